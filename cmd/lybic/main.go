package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/lybic/lybic-sdk-go/cmd/lybic/commands"
	"github.com/lybic/lybic-sdk-go/internal/conventions"
	"github.com/lybic/lybic-sdk-go/internal/log"
	loglogrus "github.com/lybic/lybic-sdk-go/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	// The .env file only fills the variables that are not already set.
	if err := godotenv.Load(conventions.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not load %s file: %w", conventions.EnvFile, err)
	}

	app := kingpin.New("lybic", "Lybic cloud sandbox client.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	statsCmd := commands.NewStatsCommand(rootCmd, app)
	shellCmd := commands.NewShellCommand(rootCmd, app)
	processCmd := commands.NewProcessCommand(rootCmd, app)
	cpCmd := commands.NewCpCommand(rootCmd, app)
	parseCmd := commands.NewParseCommand(rootCmd, app)
	historyCmd := commands.NewHistoryCommand(rootCmd, app)

	sbxCmd := commands.NewSandboxCommand(app)
	sandboxListCmd := commands.NewSandboxListCommand(rootCmd, sbxCmd)
	sandboxCreateCmd := commands.NewSandboxCreateCommand(rootCmd, sbxCmd)
	sandboxGetCmd := commands.NewSandboxGetCommand(rootCmd, sbxCmd)
	sandboxDeleteCmd := commands.NewSandboxDeleteCommand(rootCmd, sbxCmd)
	sandboxExtendCmd := commands.NewSandboxExtendCommand(rootCmd, sbxCmd)
	sandboxPreviewCmd := commands.NewSandboxPreviewCommand(rootCmd, sbxCmd)
	sandboxScreenshotCmd := commands.NewSandboxScreenshotCommand(rootCmd, sbxCmd)

	actCmd := commands.NewActionCommand(app)
	actionValidateCmd := commands.NewActionValidateCommand(rootCmd, actCmd)
	actionExecCmd := commands.NewActionExecCommand(rootCmd, actCmd)
	actionRunCmd := commands.NewActionRunCommand(rootCmd, actCmd)

	prjCmd := commands.NewProjectCommand(app)
	projectListCmd := commands.NewProjectListCommand(rootCmd, prjCmd)
	projectCreateCmd := commands.NewProjectCreateCommand(rootCmd, prjCmd)
	projectDeleteCmd := commands.NewProjectDeleteCommand(rootCmd, prjCmd)

	mcpCmd := commands.NewMcpCommand(app)
	mcpListCmd := commands.NewMcpListCommand(rootCmd, mcpCmd)
	mcpCreateCmd := commands.NewMcpCreateCommand(rootCmd, mcpCmd)
	mcpDefaultCmd := commands.NewMcpDefaultCommand(rootCmd, mcpCmd)
	mcpDeleteCmd := commands.NewMcpDeleteCommand(rootCmd, mcpCmd)
	mcpSetSandboxCmd := commands.NewMcpSetSandboxCommand(rootCmd, mcpCmd)

	mobCmd := commands.NewMobileCommand(app)
	mobileGPSCmd := commands.NewMobileGPSCommand(rootCmd, mobCmd)
	mobileInstallAPKCmd := commands.NewMobileInstallAPKCommand(rootCmd, mobCmd)

	cmds := map[string]commands.Command{
		statsCmd.Name():             statsCmd,
		shellCmd.Name():             shellCmd,
		processCmd.Name():           processCmd,
		cpCmd.Name():                cpCmd,
		parseCmd.Name():             parseCmd,
		historyCmd.Name():           historyCmd,
		sandboxListCmd.Name():       sandboxListCmd,
		sandboxCreateCmd.Name():     sandboxCreateCmd,
		sandboxGetCmd.Name():        sandboxGetCmd,
		sandboxDeleteCmd.Name():     sandboxDeleteCmd,
		sandboxExtendCmd.Name():     sandboxExtendCmd,
		sandboxPreviewCmd.Name():    sandboxPreviewCmd,
		sandboxScreenshotCmd.Name(): sandboxScreenshotCmd,
		actionValidateCmd.Name():    actionValidateCmd,
		actionExecCmd.Name():        actionExecCmd,
		actionRunCmd.Name():         actionRunCmd,
		projectListCmd.Name():       projectListCmd,
		projectCreateCmd.Name():     projectCreateCmd,
		projectDeleteCmd.Name():     projectDeleteCmd,
		mcpListCmd.Name():           mcpListCmd,
		mcpCreateCmd.Name():         mcpCreateCmd,
		mcpDefaultCmd.Name():        mcpDefaultCmd,
		mcpDeleteCmd.Name():         mcpDeleteCmd,
		mcpSetSandboxCmd.Name():     mcpSetSandboxCmd,
		mobileGPSCmd.Name():         mobileGPSCmd,
		mobileInstallAPKCmd.Name():  mobileInstallAPKCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Commands printing tables or JSON don't log unless --debug is used.
	printerCommands := map[string]bool{
		"stats":           true,
		"history":         true,
		"parse":           true,
		"sandbox list":    true,
		"sandbox get":     true,
		"sandbox preview": true,
		"action validate": true,
		"project list":    true,
		"mcp list":        true,
		"mcp default":     true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(*rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // Keep stdout for the command output.
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled")

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
