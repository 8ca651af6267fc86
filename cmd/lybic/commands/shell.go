package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

type ShellCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	command   string
	workDir   string
	timeout   time.Duration
}

// NewShellCommand returns the shell command.
func NewShellCommand(rootCmd *RootCommand, app *kingpin.Application) *ShellCommand {
	c := &ShellCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("shell", "Run a shell command in a sandbox streaming its output.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Arg("command", "Shell command.").Required().StringVar(&c.command)
	c.Cmd.Flag("workdir", "Working directory of the command.").Short('w').StringVar(&c.workDir)
	c.Cmd.Flag("command-timeout", "Maximum time the command can run.").DurationVar(&c.timeout)

	return c
}

func (c ShellCommand) Name() string { return c.Cmd.FullCommand() }

func (c ShellCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	s, err := client.StreamShell(ctx, c.sandboxID, lybic.ShellSessionRequest{
		Command:          c.command,
		WorkingDirectory: c.workDir,
		TimeoutSeconds:   int(c.timeout.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("could not start shell: %w", err)
	}
	defer s.Close()

	// Stop a blocked stream when the command is cancelled.
	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	return copyShellStream(s, c.rootCmd.Stdout, c.rootCmd.Stderr)
}

type shellEventReceiver interface {
	Recv() (lybic.StreamEvent, error)
}

// copyShellStream writes the stream output until it ends, a timeout event is an error.
func copyShellStream(s shellEventReceiver, stdout, stderr io.Writer) error {
	for {
		ev, err := s.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("shell stream failed: %w", err)
		}

		switch ev.Type {
		case lybic.StreamEventStdout:
			_, err = io.WriteString(stdout, ev.Data)
		case lybic.StreamEventStderr:
			_, err = io.WriteString(stderr, ev.Data)
		case lybic.StreamEventTimeout:
			return fmt.Errorf("shell command timed out")
		case lybic.StreamEventEnd:
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
	}
}
