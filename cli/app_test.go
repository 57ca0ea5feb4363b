package cli

import (
	"bytes"
	"testing"

	"github.com/gruntwork-io/azure-bootstrap/cli/commands/bootstrap"
	"github.com/gruntwork-io/azure-bootstrap/cli/commands/delete"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp() (*cli.App, *options.Options) {
	opts := options.NewWithWriters(new(bytes.Buffer), new(bytes.Buffer))

	app := NewApp(opts)
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "noop",
		Hidden: true,
		Action: func(ctx *cli.Context) error { return nil },
	})

	return app, opts
}

func TestAppRegistersCommands(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}

	assert.Contains(t, names, bootstrap.CommandName)
	assert.Contains(t, names, delete.CommandName)
}

func TestGlobalFlagsConfigureOptions(t *testing.T) {
	t.Parallel()

	app, opts := newTestApp()

	err := app.Run([]string{AppName, "--log-level", "trace", "--non-interactive", "noop"})
	require.NoError(t, err)

	assert.Equal(t, log.TraceLevel, opts.Logger.Level())
	assert.True(t, opts.NonInteractive)
}

func TestGlobalFlagDefaults(t *testing.T) {
	t.Parallel()

	app, opts := newTestApp()

	err := app.Run([]string{AppName, "noop"})
	require.NoError(t, err)

	assert.Equal(t, log.InfoLevel, opts.Logger.Level())
	assert.False(t, opts.NonInteractive)
}

func TestInvalidLogLevelFails(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp()

	err := app.Run([]string{AppName, "--log-level", "shout", "noop"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid value "shout"`)
}
