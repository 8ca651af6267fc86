package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

// NewProjectCommand returns the parent command of the project commands.
func NewProjectCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("project", "Manage organization projects.")
}

type ProjectListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewProjectListCommand returns the project list command.
func NewProjectListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ProjectListCommand {
	c := &ProjectListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the projects.").Alias("ls")
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c ProjectListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectListCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("could not list projects: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintProjectList(projects)
}

type ProjectCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name   string
	format string
}

// NewProjectCreateCommand returns the project create command.
func NewProjectCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ProjectCreateCommand {
	c := &ProjectCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Create a project.")
	c.Cmd.Arg("name", "Project name.").Required().StringVar(&c.name)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c ProjectCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectCreateCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	p, err := client.CreateProject(ctx, c.name)
	if err != nil {
		return fmt.Errorf("could not create project: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintProjectList([]lybic.Project{*p})
}

type ProjectDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectIDs []string
}

// NewProjectDeleteCommand returns the project delete command.
func NewProjectDeleteCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ProjectDeleteCommand {
	c := &ProjectDeleteCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("delete", "Delete projects.").Alias("rm")
	c.Cmd.Arg("project-id", "Project IDs.").Required().StringsVar(&c.projectIDs)

	return c
}

func (c ProjectDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectDeleteCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, id := range c.projectIDs {
		if err := client.DeleteProject(ctx, id); err != nil {
			return fmt.Errorf("could not delete project %s: %w", id, err)
		}
		c.rootCmd.Logger.Infof("Project %s deleted", id)
	}

	return nil
}
