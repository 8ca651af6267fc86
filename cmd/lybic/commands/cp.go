package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/internal/utils/env"
	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

const sandboxLocationPrefix = "sbx:"

type CpCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID   string
	source      string
	destination string
	urlHeaders  []string
	format      string
}

// NewCpCommand returns the cp command.
func NewCpCommand(rootCmd *RootCommand, app *kingpin.Application) *CpCommand {
	c := &CpCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("cp", "Copy files between a sandbox and HTTP URLs.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Arg("source", "Source location (sbx:/path or http(s) URL to download).").Required().StringVar(&c.source)
	c.Cmd.Arg("destination", "Destination location (sbx:/path or http(s) URL to upload).").Required().StringVar(&c.destination)
	c.Cmd.Flag("url-header", "Header sent to the HTTP location in KEY=VALUE form (repeatable).").StringsVar(&c.urlHeaders)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c CpCommand) Name() string { return c.Cmd.FullCommand() }

func (c CpCommand) Run(ctx context.Context) error {
	headers, err := env.ParseHeaderSpecs(c.urlHeaders)
	if err != nil {
		return fmt.Errorf("invalid url headers: %w", err)
	}

	src, err := parseLocation(c.source, true, headers)
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	dst, err := parseLocation(c.destination, false, headers)
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}

	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := client.CopyFiles(ctx, c.sandboxID, lybic.FileCopyRequest{
		Files: []lybic.FileCopyItem{{ID: "cp", Src: src, Dest: dst}},
	})
	if err != nil {
		return fmt.Errorf("could not copy: %w", err)
	}

	for _, r := range res.Results {
		if !r.Success {
			return fmt.Errorf("copy failed: %s", r.Error)
		}
	}

	return c.rootCmd.Printer(c.format).PrintMessage(fmt.Sprintf("Copied %s to %s", c.source, c.destination))
}

// parseLocation returns the file location of an argument. HTTP URLs are
// downloaded by the sandbox when they are the source and uploaded to otherwise.
func parseLocation(arg string, source bool, headers map[string]string) (lybic.FileLocation, error) {
	switch {
	case strings.HasPrefix(arg, sandboxLocationPrefix):
		path := strings.TrimPrefix(arg, sandboxLocationPrefix)
		if path == "" {
			return lybic.FileLocation{}, fmt.Errorf("sandbox path is required: %w", lybic.ErrNotValid)
		}
		return lybic.SandboxFile(path), nil
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		if len(headers) == 0 {
			headers = nil
		}
		if source {
			return lybic.HTTPGetFile(arg, headers), nil
		}
		return lybic.HTTPPutFile(arg, headers), nil
	}

	return lybic.FileLocation{}, fmt.Errorf("%q must be a %s/path or an http(s) URL: %w", arg, sandboxLocationPrefix, lybic.ErrNotValid)
}
