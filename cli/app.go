// Package cli assembles the azure-bootstrap command line application.
package cli

import (
	"github.com/gruntwork-io/azure-bootstrap/cli/commands/bootstrap"
	"github.com/gruntwork-io/azure-bootstrap/cli/commands/delete"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/urfave/cli/v2"
)

// AppName is the executable name shown in help output.
const AppName = "azure-bootstrap"

const (
	LogLevelFlagName       = "log-level"
	NonInteractiveFlagName = "non-interactive"
	NoColorFlagName        = "no-color"
)

// Version is set at build time through ldflags.
var Version = "unknown"

// NewApp creates the application with all commands and global flags registered.
func NewApp(opts *options.Options) *cli.App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Provision and manage Azure remote state storage for OpenTofu/Terraform."
	app.Version = Version
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = newGlobalFlags()
	app.Before = func(ctx *cli.Context) error {
		return applyGlobalFlags(ctx, opts)
	}
	app.Commands = []*cli.Command{
		bootstrap.NewCommand(opts),
		delete.NewCommand(opts),
	}
	// Errors are reported by main, not by the library.
	app.ExitErrHandler = func(ctx *cli.Context, err error) {}

	return app
}

func newGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    LogLevelFlagName,
			EnvVars: []string{"AZURE_BOOTSTRAP_LOG_LEVEL"},
			Usage:   "Log level: trace, debug, info, warn, error.",
			Value:   log.InfoLevel.String(),
		},
		&cli.BoolFlag{
			Name:    NonInteractiveFlagName,
			EnvVars: []string{"AZURE_BOOTSTRAP_NON_INTERACTIVE"},
			Usage:   "Assume \"yes\" for all prompts.",
		},
		&cli.BoolFlag{
			Name:    NoColorFlagName,
			EnvVars: []string{"AZURE_BOOTSTRAP_NO_COLOR"},
			Usage:   "Disable color output.",
		},
	}
}

func applyGlobalFlags(ctx *cli.Context, opts *options.Options) error {
	level, err := log.ParseLevel(ctx.String(LogLevelFlagName))
	if err != nil {
		return errors.Errorf("invalid value %q for --%s: %w", ctx.String(LogLevelFlagName), LogLevelFlagName, err)
	}

	opts.Logger.SetOptions(log.WithLevel(level))

	if ctx.Bool(NoColorFlagName) {
		opts.LogFormatter.SetDisableColors(true)
	}

	if ctx.Bool(NonInteractiveFlagName) {
		opts.NonInteractive = true
	}

	return nil
}
