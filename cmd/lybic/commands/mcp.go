package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

// NewMcpCommand returns the parent command of the MCP server commands.
func NewMcpCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("mcp", "Manage MCP servers.")
}

type McpListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewMcpListCommand returns the mcp list command.
func NewMcpListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *McpListCommand {
	c := &McpListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the MCP servers.").Alias("ls")
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c McpListCommand) Name() string { return c.Cmd.FullCommand() }

func (c McpListCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	servers, err := client.ListMcpServers(ctx)
	if err != nil {
		return fmt.Errorf("could not list mcp servers: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintMcpServerList(servers)
}

type McpCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name           string
	projectID      string
	maxLifetime    time.Duration
	maxIdleTime    time.Duration
	autoCreate     bool
	exposeRecreate bool
	exposeRestart  bool
	exposeDelete   bool
	format         string
}

// NewMcpCreateCommand returns the mcp create command.
func NewMcpCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *McpCreateCommand {
	c := &McpCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Create an MCP server.")
	c.Cmd.Arg("name", "MCP server name.").Required().StringVar(&c.name)
	c.Cmd.Flag("project", "Project ID.").StringVar(&c.projectID)
	c.Cmd.Flag("sandbox-max-lifetime", "Maximum lifetime of the server sandboxes.").Default("1h").DurationVar(&c.maxLifetime)
	c.Cmd.Flag("sandbox-max-idle", "Maximum idle time of the server sandboxes.").Default("1h").DurationVar(&c.maxIdleTime)
	c.Cmd.Flag("auto-create", "Create a sandbox automatically when a tool needs it.").BoolVar(&c.autoCreate)
	c.Cmd.Flag("expose-recreate", "Expose the sandbox recreate tool.").BoolVar(&c.exposeRecreate)
	c.Cmd.Flag("expose-restart", "Expose the sandbox restart tool.").BoolVar(&c.exposeRestart)
	c.Cmd.Flag("expose-delete", "Expose the sandbox delete tool.").BoolVar(&c.exposeDelete)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c McpCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c McpCreateCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	srv, err := client.CreateMcpServer(ctx, lybic.CreateMcpServerRequest{
		Name:      c.name,
		ProjectID: c.projectID,
		McpServerPolicy: lybic.McpServerPolicy{
			SandboxMaxLifetimeSeconds: int(c.maxLifetime.Seconds()),
			SandboxMaxIdleTimeSeconds: int(c.maxIdleTime.Seconds()),
			SandboxAutoCreation:       c.autoCreate,
			SandboxExposeRecreateTool: c.exposeRecreate,
			SandboxExposeRestartTool:  c.exposeRestart,
			SandboxExposeDeleteTool:   c.exposeDelete,
		},
	})
	if err != nil {
		return fmt.Errorf("could not create mcp server: %w", err)
	}
	c.rootCmd.Logger.Infof("MCP server URL: %s", client.McpServerURL(srv.ID))

	return c.rootCmd.Printer(c.format).PrintMcpServerList([]lybic.McpServer{*srv})
}

type McpDefaultCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewMcpDefaultCommand returns the mcp default command.
func NewMcpDefaultCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *McpDefaultCommand {
	c := &McpDefaultCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("default", "Show the default MCP server of the organization.")
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c McpDefaultCommand) Name() string { return c.Cmd.FullCommand() }

func (c McpDefaultCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	srv, err := client.GetDefaultMcpServer(ctx)
	if err != nil {
		return fmt.Errorf("could not get default mcp server: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintMcpServerList([]lybic.McpServer{*srv})
}

type McpDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	serverIDs []string
}

// NewMcpDeleteCommand returns the mcp delete command.
func NewMcpDeleteCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *McpDeleteCommand {
	c := &McpDeleteCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("delete", "Delete MCP servers.").Alias("rm")
	c.Cmd.Arg("mcp-server-id", "MCP server IDs.").Required().StringsVar(&c.serverIDs)

	return c
}

func (c McpDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c McpDeleteCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, id := range c.serverIDs {
		if err := client.DeleteMcpServer(ctx, id); err != nil {
			return fmt.Errorf("could not delete mcp server %s: %w", id, err)
		}
		c.rootCmd.Logger.Infof("MCP server %s deleted", id)
	}

	return nil
}

type McpSetSandboxCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	serverID  string
	sandboxID string
}

// NewMcpSetSandboxCommand returns the mcp set-sandbox command.
func NewMcpSetSandboxCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *McpSetSandboxCommand {
	c := &McpSetSandboxCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("set-sandbox", "Bind an MCP server to a sandbox.")
	c.Cmd.Arg("mcp-server-id", "MCP server ID.").Required().StringVar(&c.serverID)
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)

	return c
}

func (c McpSetSandboxCommand) Name() string { return c.Cmd.FullCommand() }

func (c McpSetSandboxCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.SetMcpServerSandbox(ctx, c.serverID, c.sandboxID); err != nil {
		return fmt.Errorf("could not set mcp server sandbox: %w", err)
	}
	c.rootCmd.Logger.Infof("MCP server %s bound to sandbox %s", c.serverID, c.sandboxID)

	return nil
}
