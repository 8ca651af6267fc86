package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

// JSONPrinter prints Lybic resources in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type actionRecordOutput struct {
	ID         string          `json:"id"`
	CallID     string          `json:"call_id"`
	SandboxID  string          `json:"sandbox_id"`
	ActionType string          `json:"action_type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type processOutput struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintStats prints the organization counters in JSON format.
func (j *JSONPrinter) PrintStats(stats model.Stats) error { return j.encode(stats) }

// PrintSandboxList prints sandboxes in JSON format, an empty list is printed as [].
func (j *JSONPrinter) PrintSandboxList(sandboxes []model.Sandbox) error {
	if sandboxes == nil {
		sandboxes = []model.Sandbox{}
	}
	return j.encode(sandboxes)
}

// PrintSandbox prints a sandbox with its connection details in JSON format.
func (j *JSONPrinter) PrintSandbox(details model.SandboxDetails) error { return j.encode(details) }

// PrintProjectList prints projects in JSON format.
func (j *JSONPrinter) PrintProjectList(projects []model.Project) error {
	if projects == nil {
		projects = []model.Project{}
	}
	return j.encode(projects)
}

// PrintMcpServerList prints MCP servers in JSON format.
func (j *JSONPrinter) PrintMcpServerList(servers []model.McpServer) error {
	if servers == nil {
		servers = []model.McpServer{}
	}
	return j.encode(servers)
}

// PrintActionResult prints an action result in JSON format.
func (j *JSONPrinter) PrintActionResult(result model.ActionResult) error { return j.encode(result) }

// PrintActionRecords prints journal records in JSON format.
func (j *JSONPrinter) PrintActionRecords(records []model.ActionRecord) error {
	items := make([]actionRecordOutput, len(records))
	for i, r := range records {
		items[i] = actionRecordOutput{
			ID:         r.ID,
			CallID:     r.CallID,
			SandboxID:  r.SandboxID,
			ActionType: r.ActionType,
			Status:     string(r.Status),
			Error:      r.Error,
			CreatedAt:  r.CreatedAt.UTC(),
		}
		if json.Valid([]byte(r.Payload)) {
			items[i].Payload = json.RawMessage(r.Payload)
		}
	}
	return j.encode(items)
}

// PrintProcessResult prints a process result with decoded output in JSON format.
func (j *JSONPrinter) PrintProcessResult(result model.ProcessResult) error {
	return j.encode(processOutput{
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout(),
		Stderr:   result.Stderr(),
	})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}
