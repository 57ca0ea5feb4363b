package options_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriters(t *testing.T) {
	t.Parallel()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	opts := options.NewWithWriters(stdout, stderr)

	require.NotNil(t, opts.Logger)
	assert.Equal(t, stdout, opts.Writer)
	assert.Equal(t, stderr, opts.ErrWriter)
	assert.False(t, opts.NonInteractive)

	opts.Logger.Infof("hello from the logger")
	assert.Contains(t, stderr.String(), "hello from the logger")
	assert.Empty(t, stdout.String())
}

func TestNewForTest(t *testing.T) {
	t.Parallel()

	opts := options.NewForTest(new(bytes.Buffer), new(bytes.Buffer))

	assert.True(t, opts.NonInteractive)
	assert.True(t, opts.LogFormatter.DisabledColors())
}

func TestEnvSnapshotContainsProcessEnvironment(t *testing.T) {
	os.Setenv("AZURE_BOOTSTRAP_OPTIONS_TEST", "set")
	defer os.Unsetenv("AZURE_BOOTSTRAP_OPTIONS_TEST")

	opts := options.NewWithWriters(new(bytes.Buffer), new(bytes.Buffer))

	assert.Equal(t, "set", opts.Env["AZURE_BOOTSTRAP_OPTIONS_TEST"])
}
