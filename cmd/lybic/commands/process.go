package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

type ProcessCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID  string
	executable string
	args       []string
	workDir    string
	stdin      string
	format     string
}

// NewProcessCommand returns the process command.
func NewProcessCommand(rootCmd *RootCommand, app *kingpin.Application) *ProcessCommand {
	c := &ProcessCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("process", "Run a process in a sandbox and wait for it to finish.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Arg("executable", "Executable to run.").Required().StringVar(&c.executable)
	c.Cmd.Arg("args", "Executable arguments.").StringsVar(&c.args)
	c.Cmd.Flag("workdir", "Working directory of the process.").Short('w').StringVar(&c.workDir)
	c.Cmd.Flag("stdin", "Standard input of the process, '-' reads it from stdin.").StringVar(&c.stdin)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c ProcessCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProcessCommand) Run(ctx context.Context) error {
	req := lybic.ProcessRequest{
		Executable:       c.executable,
		Args:             c.args,
		WorkingDirectory: c.workDir,
	}
	if c.stdin != "" {
		data, err := readInput(c.stdin, c.rootCmd.Stdin)
		if err != nil {
			return err
		}
		req.SetStdin(data)
	}

	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := client.ExecuteProcess(ctx, c.sandboxID, req)
	if err != nil {
		return fmt.Errorf("could not run process: %w", err)
	}

	if err := c.rootCmd.Printer(c.format).PrintProcessResult(*res); err != nil {
		return err
	}

	if res.ExitCode != 0 {
		return fmt.Errorf("process exited with code %d", res.ExitCode)
	}
	return nil
}
