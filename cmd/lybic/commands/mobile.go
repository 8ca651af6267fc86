package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

// NewMobileCommand returns the parent command of the Android sandbox commands.
func NewMobileCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("mobile", "Android sandbox utilities.")
}

type MobileGPSCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	latitude  float64
	longitude float64
}

// NewMobileGPSCommand returns the mobile gps command.
func NewMobileGPSCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *MobileGPSCommand {
	c := &MobileGPSCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("gps", "Set the GPS location of an Android sandbox.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Arg("latitude", "Latitude in degrees.").Required().Float64Var(&c.latitude)
	c.Cmd.Arg("longitude", "Longitude in degrees.").Required().Float64Var(&c.longitude)

	return c
}

func (c MobileGPSCommand) Name() string { return c.Cmd.FullCommand() }

func (c MobileGPSCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := client.SetGPSLocation(ctx, c.sandboxID, c.latitude, c.longitude)
	if err != nil {
		return fmt.Errorf("could not set gps location: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("gps location command exited with code %d: %s", res.ExitCode, res.Stderr())
	}
	c.rootCmd.Logger.Infof("GPS location of %s set to %f,%f", c.sandboxID, c.latitude, c.longitude)

	return nil
}

type MobileInstallAPKCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sandboxID string
	sources   []string
}

// NewMobileInstallAPKCommand returns the mobile install-apk command.
func NewMobileInstallAPKCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *MobileInstallAPKCommand {
	c := &MobileInstallAPKCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("install-apk", "Install APKs on an Android sandbox in the background.")
	c.Cmd.Arg("sandbox-id", "Sandbox ID.").Required().StringVar(&c.sandboxID)
	c.Cmd.Arg("apk", "APK device paths or http(s) URLs.").Required().StringsVar(&c.sources)

	return c
}

func (c MobileInstallAPKCommand) Name() string { return c.Cmd.FullCommand() }

func (c MobileInstallAPKCommand) Run(ctx context.Context) error {
	client, err := c.rootCmd.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.InstallAPK(ctx, c.sandboxID, apkSources(c.sources)...); err != nil {
		return fmt.Errorf("could not install apks: %w", err)
	}
	c.rootCmd.Logger.Infof("Installing %d APKs on %s", len(c.sources), c.sandboxID)

	return nil
}

func apkSources(args []string) []lybic.APKSource {
	sources := make([]lybic.APKSource, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "http://") || strings.HasPrefix(a, "https://") {
			sources = append(sources, lybic.RemoteAPK(a, nil))
			continue
		}
		sources = append(sources, lybic.LocalAPK(a))
	}
	return sources
}
