package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

type HistoryCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID  string
	actionType string
	limit      int
	format     string
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand(rootCmd *RootCommand, app *kingpin.Application) *HistoryCommand {
	c := &HistoryCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("history", "List the actions recorded in the local journal, newest first.")
	c.Cmd.Flag("sandbox", "Only actions of this sandbox.").StringVar(&c.sandboxID)
	c.Cmd.Flag("type", "Only actions of this type (e.g mouse:click).").StringVar(&c.actionType)
	c.Cmd.Flag("limit", "Maximum number of actions.").Default("20").IntVar(&c.limit)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c HistoryCommand) Name() string { return c.Cmd.FullCommand() }

func (c HistoryCommand) Run(ctx context.Context) error {
	if c.rootCmd.NoJournal {
		return fmt.Errorf("the journal is disabled")
	}

	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	records, err := client.ActionHistory(ctx, lybic.ActionRecordFilter{
		SandboxID:  c.sandboxID,
		ActionType: c.actionType,
		Limit:      c.limit,
	})
	if err != nil {
		return fmt.Errorf("could not list action history: %w", err)
	}

	return c.rootCmd.Printer(c.format).PrintActionRecords(records)
}
