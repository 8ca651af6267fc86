package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type StatsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewStatsCommand returns the stats command.
func NewStatsCommand(rootCmd *RootCommand, app *kingpin.Application) *StatsCommand {
	c := &StatsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("stats", "Show the organization resource counters.")
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c StatsCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatsCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	stats, err := client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("could not get stats: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintStats(*stats)
}
