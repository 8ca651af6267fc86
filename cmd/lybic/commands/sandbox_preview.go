package commands

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/internal/printer"
)

type SandboxPreviewCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	format    string
}

// NewSandboxPreviewCommand returns the sandbox preview command.
func NewSandboxPreviewCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxPreviewCommand {
	c := &SandboxPreviewCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("preview", "Show the current screenshot URL and cursor position of a sandbox.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c SandboxPreviewCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxPreviewCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := client.PreviewSandbox(ctx, c.sandboxID)
	if err != nil {
		return fmt.Errorf("could not preview sandbox: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintActionResult(*res)
}

type SandboxScreenshotCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	output    string
}

// NewSandboxScreenshotCommand returns the sandbox screenshot command.
func NewSandboxScreenshotCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxScreenshotCommand {
	c := &SandboxScreenshotCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("screenshot", "Download a sandbox screenshot.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Flag("output", "Output file, '-' writes to stdout (default: named after the screenshot URL).").Short('o').StringVar(&c.output)

	return c
}

func (c SandboxScreenshotCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxScreenshotCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	shot, err := client.GetScreenshot(ctx, c.sandboxID)
	if err != nil {
		return fmt.Errorf("could not get screenshot: %w", err)
	}

	if c.output == "-" {
		_, err := c.rootCmd.Stdout.Write(shot.Data)
		return err
	}

	out := c.output
	if out == "" {
		out = screenshotFileName(c.sandboxID, shot.URL, shot.ContentType)
	}
	if err := os.WriteFile(out, shot.Data, 0o644); err != nil {
		return fmt.Errorf("could not write screenshot: %w", err)
	}

	return c.rootCmd.Printer(formatTable).PrintMessage(fmt.Sprintf("Screenshot saved to %s (%s)", out, printer.FormatBytes(int64(len(shot.Data)))))
}

// screenshotFileName names a screenshot after its URL, or the sandbox with an
// extension for the content type.
func screenshotFileName(sandboxID, rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.Path); name != "." && name != "/" && path.Ext(name) != "" {
			return name
		}
	}

	ext := ".png"
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return sandboxID + ext
}
