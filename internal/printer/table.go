package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

// TablePrinter prints Lybic resources in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

func (t *TablePrinter) table(header string, rows func(tw io.Writer)) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

// PrintStats prints the organization counters.
func (t *TablePrinter) PrintStats(stats model.Stats) error {
	return t.table("SANDBOXES\tPROJECTS\tMCP SERVERS", func(tw io.Writer) {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", stats.Sandboxes, stats.Projects, stats.McpServers)
	})
}

// PrintSandboxList prints sandboxes in a table format.
func (t *TablePrinter) PrintSandboxList(sandboxes []model.Sandbox) error {
	if len(sandboxes) == 0 {
		return nil
	}

	return t.table("ID\tNAME\tOS\tCREATED\tEXPIRES", func(tw io.Writer) {
		for _, s := range sandboxes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, sandboxOS(s), FormatAPITime(s.CreatedAt), FormatAPITime(s.ExpiredAt))
		}
	})
}

// PrintSandbox prints a detailed sandbox.
func (t *TablePrinter) PrintSandbox(details model.SandboxDetails) error {
	s := details.Sandbox
	fmt.Fprintf(t.writer, "Name:       %s\n", s.Name)
	fmt.Fprintf(t.writer, "ID:         %s\n", s.ID)
	if s.ProjectID != "" {
		fmt.Fprintf(t.writer, "Project:    %s\n", s.ProjectID)
	}
	if s.Shape != nil {
		fmt.Fprintf(t.writer, "Shape:      %s\n", s.Shape.Name)
		fmt.Fprintf(t.writer, "OS:         %s\n", s.Shape.OS)
		if s.Shape.Architecture != "" {
			fmt.Fprintf(t.writer, "Arch:       %s\n", s.Shape.Architecture)
		}
	}
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatAPITime(s.CreatedAt))
	fmt.Fprintf(t.writer, "Expires:    %s\n", FormatAPITime(s.ExpiredAt))

	cd := details.ConnectDetails
	if cd.RoomID != "" {
		fmt.Fprintf(t.writer, "Room:       %s\n", cd.RoomID)
	}
	for _, g := range cd.GatewayAddresses {
		fmt.Fprintf(t.writer, "Gateway:    %s:%d (%s)\n", g.Address, g.Port, g.GatewayType)
	}

	return nil
}

// PrintProjectList prints projects in a table format.
func (t *TablePrinter) PrintProjectList(projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	return t.table("ID\tNAME\tDEFAULT\tCREATED", func(tw io.Writer) {
		for _, p := range projects {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, yesNo(p.DefaultProject), FormatAPITime(p.CreatedAt))
		}
	})
}

// PrintMcpServerList prints MCP servers in a table format.
func (t *TablePrinter) PrintMcpServerList(servers []model.McpServer) error {
	if len(servers) == 0 {
		return nil
	}

	return t.table("ID\tNAME\tDEFAULT\tSANDBOX\tCREATED", func(tw io.Writer) {
		for _, s := range servers {
			sbx := s.CurrentSandboxID
			if sbx == "" {
				sbx = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, yesNo(s.DefaultMcpServer), sbx, FormatAPITime(s.CreatedAt))
		}
	})
}

// PrintActionResult prints the result of an executed action.
func (t *TablePrinter) PrintActionResult(result model.ActionResult) error {
	if result.ScreenShot != "" {
		fmt.Fprintf(t.writer, "Screenshot: %s\n", result.ScreenShot)
	}
	if c := result.CursorPosition; c != nil {
		fmt.Fprintf(t.writer, "Cursor:     %d,%d (screen %d: %dx%d)\n", c.X, c.Y, c.ScreenIndex, c.ScreenWidth, c.ScreenHeight)
	}
	if len(result.Output) > 0 {
		fmt.Fprintf(t.writer, "Result:     %s\n", result.Output)
	}
	return nil
}

// PrintActionRecords prints journal records in a table format.
func (t *TablePrinter) PrintActionRecords(records []model.ActionRecord) error {
	if len(records) == 0 {
		return nil
	}

	return t.table("CALL ID\tSANDBOX\tACTION\tSTATUS\tWHEN", func(tw io.Writer) {
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.CallID, r.SandboxID, r.ActionType, r.Status, TimeAgo(r.CreatedAt))
		}
	})
}

// PrintProcessResult prints the process output followed by its exit code.
func (t *TablePrinter) PrintProcessResult(result model.ProcessResult) error {
	if out := result.Stdout(); out != "" {
		fmt.Fprint(t.writer, withNewLine(out))
	}
	if errOut := result.Stderr(); errOut != "" {
		fmt.Fprint(t.writer, withNewLine(errOut))
	}
	fmt.Fprintf(t.writer, "Exit code:  %d\n", result.ExitCode)
	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

func sandboxOS(s model.Sandbox) string {
	if s.Shape == nil || s.Shape.OS == "" {
		return "-"
	}
	return string(s.Shape.OS)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func withNewLine(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
