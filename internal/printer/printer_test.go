package printer_test

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/printer"
)

func sandboxFixture() model.SandboxDetails {
	return model.SandboxDetails{
		Sandbox: model.Sandbox{
			ID:        "SBX-01",
			Name:      "my-sandbox",
			ProjectID: "PRJ-01",
			CreatedAt: "2026-01-30T10:00:00Z",
			ExpiredAt: "2026-01-30T11:00:00Z",
			Shape:     &model.SandboxShape{Name: "beijing-2c-4g-cpu", OS: model.SandboxOSWindows, Architecture: "x86_64"},
		},
		ConnectDetails: model.ConnectDetails{
			RoomID:           "room-1",
			GatewayAddresses: []model.GatewayAddress{{Address: "gw.lybic.cn", Port: 443, GatewayType: model.GatewayTypeQUIC}},
		},
	}
}

func TestTablePrinter(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := map[string]struct {
		print  func(p printer.Printer) error
		expOut []string
		expNot []string
	}{
		"Stats should be printed as a single row.": {
			print:  func(p printer.Printer) error { return p.PrintStats(model.Stats{Sandboxes: 3, Projects: 2, McpServers: 1}) },
			expOut: []string{"SANDBOXES  PROJECTS  MCP SERVERS\n3          2         1\n"},
		},
		"Sandbox list should have the sandbox OS.": {
			print: func(p printer.Printer) error {
				return p.PrintSandboxList([]model.Sandbox{sandboxFixture().Sandbox, {ID: "SBX-02", Name: "other"}})
			},
			expOut: []string{"ID", "SBX-01", "Windows", "SBX-02", "-"},
		},
		"An empty sandbox list should print nothing.": {
			print:  func(p printer.Printer) error { return p.PrintSandboxList(nil) },
			expNot: []string{"ID"},
		},
		"Sandbox details should have the shape and gateways.": {
			print:  func(p printer.Printer) error { return p.PrintSandbox(sandboxFixture()) },
			expOut: []string{"Name:       my-sandbox", "Shape:      beijing-2c-4g-cpu", "OS:         Windows", "Room:       room-1", "Gateway:    gw.lybic.cn:443 (QUIC)"},
		},
		"Projects should mark the default one.": {
			print: func(p printer.Printer) error {
				return p.PrintProjectList([]model.Project{{ID: "PRJ-01", Name: "default", DefaultProject: true}})
			},
			expOut: []string{"PRJ-01", "yes"},
		},
		"MCP servers without sandbox should have a dash.": {
			print: func(p printer.Printer) error {
				return p.PrintMcpServerList([]model.McpServer{{ID: "MCP-01", Name: "mcp"}})
			},
			expOut: []string{"MCP-01", "no", "-"},
		},
		"Action results should have the screenshot and cursor.": {
			print: func(p printer.Printer) error {
				return p.PrintActionResult(model.ActionResult{
					ScreenShot:     "https://s3/shot.webp",
					CursorPosition: &model.CursorPosition{X: 10, Y: 20, ScreenWidth: 1280, ScreenHeight: 720},
				})
			},
			expOut: []string{"Screenshot: https://s3/shot.webp", "Cursor:     10,20 (screen 0: 1280x720)"},
			expNot: []string{"Result:"},
		},
		"Action records should be printed.": {
			print: func(p printer.Printer) error {
				return p.PrintActionRecords([]model.ActionRecord{{CallID: "c1", SandboxID: "SBX-01", ActionType: "mouse:click", Status: model.ActionRecordStatusDone, CreatedAt: time.Now()}})
			},
			expOut: []string{"CALL ID", "c1", "mouse:click", "done"},
		},
		"Process results should have the decoded output.": {
			print: func(p printer.Printer) error {
				return p.PrintProcessResult(model.ProcessResult{ExitCode: 2, StdoutBase64: b64("hello"), StderrBase64: b64("oops\n")})
			},
			expOut: []string{"hello\noops\nExit code:  2"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := test.print(printer.NewTablePrinter(&buf))
			require.NoError(t, err)

			out := buf.String()
			for _, exp := range test.expOut {
				assert.Contains(t, out, exp)
			}
			for _, exp := range test.expNot {
				assert.NotContains(t, out, exp)
			}
		})
	}
}

func TestJSONPrinter(t *testing.T) {
	tests := map[string]struct {
		print  func(p printer.Printer) error
		expOut []string
	}{
		"Sandbox details should use the API field names.": {
			print:  func(p printer.Printer) error { return p.PrintSandbox(sandboxFixture()) },
			expOut: []string{`"id": "SBX-01"`, `"os": "Windows"`, `"roomId": "room-1"`},
		},
		"Empty lists should be printed as an empty array.": {
			print:  func(p printer.Printer) error { return p.PrintSandboxList(nil) },
			expOut: []string{"[]"},
		},
		"Action records should embed the JSON payload.": {
			print: func(p printer.Printer) error {
				return p.PrintActionRecords([]model.ActionRecord{{CallID: "c1", Payload: `{"type":"screenshot"}`, Status: model.ActionRecordStatusFailed, Error: "boom"}})
			},
			expOut: []string{`"call_id": "c1"`, `"type": "screenshot"`, `"status": "failed"`, `"error": "boom"`},
		},
		"Process results should have the decoded output.": {
			print: func(p printer.Printer) error {
				return p.PrintProcessResult(model.ProcessResult{StdoutBase64: base64.StdEncoding.EncodeToString([]byte("hi"))})
			},
			expOut: []string{`"stdout": "hi"`, `"exit_code": 0`},
		},
		"Messages should be wrapped.": {
			print:  func(p printer.Printer) error { return p.PrintMessage("ok") },
			expOut: []string{`"message": "ok"`},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := test.print(printer.NewJSONPrinter(&buf))
			require.NoError(t, err)

			out := buf.String()
			for _, exp := range test.expOut {
				assert.Contains(t, out, exp)
			}
		})
	}
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
