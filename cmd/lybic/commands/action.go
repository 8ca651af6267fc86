package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

const (
	unionAll      = "all"
	unionComputer = "computer-use"
	unionMobile   = "mobile-use"
)

func unionFlag(cmd *kingpin.CmdClause, union *string, def string) {
	cmd.Flag("union", "Accepted action set (all, computer-use, mobile-use).").Default(def).EnumVar(union, unionAll, unionComputer, unionMobile)
}

func toActionUnion(union string) lybic.ActionUnion {
	switch union {
	case unionComputer:
		return lybic.ActionUnionComputerUse
	case unionMobile:
		return lybic.ActionUnionMobileUse
	default:
		return lybic.ActionUnionAll
	}
}

func decodeAction(union string, data []byte) (lybic.Action, error) {
	switch union {
	case unionComputer:
		return lybic.DecodeComputerUseAction(data)
	case unionMobile:
		return lybic.DecodeMobileUseAction(data)
	default:
		return lybic.DecodeAction(data)
	}
}

// NewActionCommand returns the parent command of the action commands.
func NewActionCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("action", "Validate and execute GUI actions.")
}

type ActionValidateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	payload string
	union   string
}

// NewActionValidateCommand returns the action validate command.
func NewActionValidateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ActionValidateCommand {
	c := &ActionValidateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("validate", "Validate a JSON action payload and print it normalized.")
	c.Cmd.Arg("payload", "JSON action payload, '-' reads it from stdin.").Required().StringVar(&c.payload)
	unionFlag(c.Cmd, &c.union, unionAll)

	return c
}

func (c ActionValidateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ActionValidateCommand) Run(ctx context.Context) error {
	data, err := readInput(c.payload, c.rootCmd.Stdin)
	if err != nil {
		return err
	}

	a, err := decodeAction(c.union, data)
	if err != nil {
		return fmt.Errorf("invalid action: %w", err)
	}

	normalized, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("could not encode action: %w", err)
	}

	return c.rootCmd.Printer(formatTable).PrintMessage(string(normalized))
}

type ActionExecCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID    string
	payload      string
	union        string
	noScreenshot bool
	format       string
}

// NewActionExecCommand returns the action exec command.
func NewActionExecCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ActionExecCommand {
	c := &ActionExecCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("exec", "Execute an action on a sandbox.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Arg("payload", "JSON action payload, '-' reads it from stdin.").Required().StringVar(&c.payload)
	unionFlag(c.Cmd, &c.union, unionAll)
	c.Cmd.Flag("no-screenshot", "Don't take a screenshot after the action.").BoolVar(&c.noScreenshot)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c ActionExecCommand) Name() string { return c.Cmd.FullCommand() }

func (c ActionExecCommand) Run(ctx context.Context) error {
	data, err := readInput(c.payload, c.rootCmd.Stdin)
	if err != nil {
		return err
	}

	a, err := decodeAction(c.union, data)
	if err != nil {
		return fmt.Errorf("invalid action: %w", err)
	}

	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	req := lybic.ExecuteActionRequest{Action: a}
	if c.noScreenshot {
		no := false
		req.IncludeScreenShot = &no
	}

	var res *lybic.ActionResult
	switch c.union {
	case unionComputer:
		res, err = client.ExecuteComputerUseAction(ctx, c.sandboxID, req)
	case unionMobile:
		res, err = client.ExecuteMobileUseAction(ctx, c.sandboxID, req)
	default:
		res, err = client.ExecuteAction(ctx, c.sandboxID, req)
	}
	if err != nil {
		return fmt.Errorf("could not execute action: %w", err)
	}
	c.rootCmd.Logger.Infof("Action %s executed (call id: %s)", a.Type(), a.GetCallID())

	return c.rootCmd.Printer(c.format).PrintActionResult(*res)
}

type ActionRunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	scriptPath      string
	sandboxID       string
	union           string
	continueOnError bool
}

// NewActionRunCommand returns the action run command.
func NewActionRunCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ActionRunCommand {
	c := &ActionRunCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("run", "Run a YAML or JSON action script.")
	c.Cmd.Arg("script", "Action script path.").Required().StringVar(&c.scriptPath)
	c.Cmd.Flag("sandbox", "Sandbox ID, overrides the script one.").StringVar(&c.sandboxID)
	unionFlag(c.Cmd, &c.union, unionAll)
	c.Cmd.Flag("continue-on-error", "Keep running the actions after a failed one.").BoolVar(&c.continueOnError)

	return c
}

func (c ActionRunCommand) Name() string { return c.Cmd.FullCommand() }

func (c ActionRunCommand) Run(ctx context.Context) error {
	script, err := lybic.LoadActionScript(ctx, c.scriptPath, toActionUnion(c.union))
	if err != nil {
		return fmt.Errorf("could not load script: %w", err)
	}

	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	steps, runErr := client.RunScript(ctx, *script, lybic.RunScriptOpts{
		SandboxID:       c.sandboxID,
		ContinueOnError: c.continueOnError,
	})

	p := c.rootCmd.Printer(formatTable)
	for _, s := range steps {
		status := "ok"
		if s.Err != nil {
			status = "failed: " + s.Err.Error()
		}
		if err := p.PrintMessage(fmt.Sprintf("[%d] %s %s", s.Index, s.Action.Type(), status)); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("script failed: %w", runErr)
	}
	return nil
}
