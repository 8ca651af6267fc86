package printer

import "github.com/lybic/lybic-sdk-go/internal/model"

// Printer knows how to print Lybic resources in different formats.
type Printer interface {
	PrintStats(stats model.Stats) error
	PrintSandboxList(sandboxes []model.Sandbox) error
	PrintSandbox(details model.SandboxDetails) error
	PrintProjectList(projects []model.Project) error
	PrintMcpServerList(servers []model.McpServer) error
	PrintActionResult(result model.ActionResult) error
	PrintActionRecords(records []model.ActionRecord) error
	PrintProcessResult(result model.ProcessResult) error
	PrintMessage(msg string) error
}

var (
	_ Printer = &TablePrinter{}
	_ Printer = &JSONPrinter{}
)
