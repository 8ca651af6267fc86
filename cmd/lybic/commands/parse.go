package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

type ParseCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	text   string
	model  string
	mobile bool
}

// NewParseCommand returns the parse command.
func NewParseCommand(rootCmd *RootCommand, app *kingpin.Application) *ParseCommand {
	c := &ParseCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("parse", "Parse the text output of an LLM into actions.")
	c.Cmd.Arg("text", "LLM output, '-' reads it from stdin.").Required().StringVar(&c.text)
	c.Cmd.Flag("model", "LLM output format (ui-tars, oai-compute-use).").Default(string(lybic.ParseModelUITars)).
		EnumVar(&c.model, string(lybic.ParseModelUITars), string(lybic.ParseModelOAIComputeUse))
	c.Cmd.Flag("mobile", "Parse into mobile use actions.").BoolVar(&c.mobile)

	return c
}

func (c ParseCommand) Name() string { return c.Cmd.FullCommand() }

func (c ParseCommand) Run(ctx context.Context) error {
	text, err := readInput(c.text, c.rootCmd.Stdin)
	if err != nil {
		return err
	}

	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	parse := client.ParseComputerUseOutput
	if c.mobile {
		parse = client.ParseMobileUseOutput
	}
	parsed, err := parse(ctx, lybic.ParseModel(c.model), string(text))
	if err != nil {
		return fmt.Errorf("could not parse output: %w", err)
	}

	enc := json.NewEncoder(c.rootCmd.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}
