package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

// NewSandboxCommand returns the parent command of the sandbox commands.
func NewSandboxCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("sandbox", "Manage sandboxes.")
}

type SandboxListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewSandboxListCommand returns the sandbox list command.
func NewSandboxListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxListCommand {
	c := &SandboxListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the sandboxes.").Alias("ls")
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c SandboxListCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxListCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	sbs, err := client.ListSandboxes(ctx)
	if err != nil {
		return fmt.Errorf("could not list sandboxes: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintSandboxList(sbs)
}

type SandboxCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	req     lybic.CreateSandboxRequest
	maxLife time.Duration
	format  string
}

// NewSandboxCreateCommand returns the sandbox create command.
func NewSandboxCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxCreateCommand {
	c := &SandboxCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Create a sandbox.")
	c.Cmd.Flag("name", "Sandbox name.").StringVar(&c.req.Name)
	c.Cmd.Flag("max-life", "Sandbox lifetime (max 24h).").Default("1h").DurationVar(&c.maxLife)
	c.Cmd.Flag("project", "Project ID.").StringVar(&c.req.ProjectID)
	c.Cmd.Flag("shape", "Sandbox shape name.").StringVar(&c.req.Shape)
	c.Cmd.Flag("datacenter", "Datacenter ID.").StringVar(&c.req.DatacenterID)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c SandboxCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxCreateCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	req := c.req
	req.MaxLifeSeconds = int(c.maxLife.Seconds())
	sb, err := client.CreateSandbox(ctx, req)
	if err != nil {
		return fmt.Errorf("could not create sandbox: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintSandbox(*sb)
}

type SandboxGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	format    string
}

// NewSandboxGetCommand returns the sandbox get command.
func NewSandboxGetCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxGetCommand {
	c := &SandboxGetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("get", "Show a sandbox with its connection details.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c SandboxGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxGetCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	sb, err := client.GetSandbox(ctx, c.sandboxID)
	if err != nil {
		return fmt.Errorf("could not get sandbox: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintSandbox(*sb)
}

type SandboxDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxIDs []string
}

// NewSandboxDeleteCommand returns the sandbox delete command.
func NewSandboxDeleteCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxDeleteCommand {
	c := &SandboxDeleteCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("delete", "Delete sandboxes.").Alias("rm")
	c.Cmd.Arg("sandbox-ids", "Sandbox IDs.").Required().StringsVar(&c.sandboxIDs)

	return c
}

func (c SandboxDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxDeleteCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	p := c.rootCmd.Printer(formatTable)
	for _, id := range c.sandboxIDs {
		if err := client.DeleteSandbox(ctx, id); err != nil {
			return fmt.Errorf("could not delete sandbox %s: %w", id, err)
		}
		if err := p.PrintMessage("Deleted sandbox: " + id); err != nil {
			return err
		}
	}

	return nil
}

type SandboxExtendCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	maxLife   time.Duration
}

// NewSandboxExtendCommand returns the sandbox extend command.
func NewSandboxExtendCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SandboxExtendCommand {
	c := &SandboxExtendCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("extend", "Set the lifetime of a sandbox, counted from its creation.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Flag("max-life", "New sandbox lifetime (max 24h).").Required().DurationVar(&c.maxLife)

	return c
}

func (c SandboxExtendCommand) Name() string { return c.Cmd.FullCommand() }

func (c SandboxExtendCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.ExtendSandboxLife(ctx, c.sandboxID, int(c.maxLife.Seconds())); err != nil {
		return fmt.Errorf("could not extend sandbox: %w", err)
	}

	return c.rootCmd.Printer(formatTable).PrintMessage(fmt.Sprintf("Sandbox %s lifetime set to %s", c.sandboxID, c.maxLife))
}
