package remotestate

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/gruntwork-io/azure-bootstrap/shell"
	"github.com/hashicorp/go-version"
)

// minAzureCLIVersion is the oldest Azure CLI release the preflight accepts.
var minAzureCLIVersion = version.Must(version.NewVersion("2.50.0"))

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, l log.Logger, command string, args ...string) (string, error)

// AccountSummary describes the signed-in account as reported by the Azure CLI.
type AccountSummary struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	UserName         string
	UserType         string
}

// AccountDomain returns the domain of the signed-in user. Service principals
// report a client ID instead of a user name, so the tenant ID is used for them.
func (s AccountSummary) AccountDomain() string {
	if i := strings.LastIndex(s.UserName, "@"); i >= 0 {
		return s.UserName[i+1:]
	}

	return s.TenantID
}

// Preflight verifies the local Azure CLI before any provisioning starts. Both
// hooks are swappable so the checks can run against canned output in tests.
type Preflight struct {
	// LookPath locates the az executable.
	LookPath func(file string) (string, error)

	// RunCommand executes the Azure CLI.
	RunCommand CommandRunner
}

// NewPreflight returns a Preflight that runs the real Azure CLI.
func NewPreflight() *Preflight {
	return &Preflight{
		LookPath:   exec.LookPath,
		RunCommand: shell.RunCommandWithOutput,
	}
}

// Check verifies that the Azure CLI is installed, not older than the supported
// floor, and holds an authenticated session. Returns a summary of the signed-in
// account on success.
func (p *Preflight) Check(ctx context.Context, l log.Logger) (*AccountSummary, error) {
	if _, err := p.LookPath("az"); err != nil {
		return nil, errors.WithStackTrace(AzureCLINotFoundError{})
	}

	if err := p.checkVersion(ctx, l); err != nil {
		return nil, err
	}

	return p.accountShow(ctx, l)
}

// checkVersion compares the installed CLI version against the supported floor.
// An output we cannot parse only produces a warning, since the CLI occasionally
// changes its version reporting.
func (p *Preflight) checkVersion(ctx context.Context, l log.Logger) error {
	out, err := p.RunCommand(ctx, l, "az", "version", "--output", "json")
	if err != nil {
		l.Warnf("Could not determine Azure CLI version: %v", err)
		return nil
	}

	var payload struct {
		AzureCLI string `json:"azure-cli"`
	}

	if err := json.Unmarshal([]byte(out), &payload); err != nil || payload.AzureCLI == "" {
		l.Warnf("Could not parse Azure CLI version output")
		return nil
	}

	installed, err := version.NewVersion(payload.AzureCLI)
	if err != nil {
		l.Warnf("Could not parse Azure CLI version %q: %v", payload.AzureCLI, err)
		return nil
	}

	if installed.LessThan(minAzureCLIVersion) {
		return errors.WithStackTrace(AzureCLIOutdatedError{
			InstalledVersion: payload.AzureCLI,
			MinimumVersion:   minAzureCLIVersion.String(),
		})
	}

	l.Debugf("Azure CLI version %s", payload.AzureCLI)

	return nil
}

// accountShow reads the CLI's active account. A failure means there is no
// usable login session.
func (p *Preflight) accountShow(ctx context.Context, l log.Logger) (*AccountSummary, error) {
	out, err := p.RunCommand(ctx, l, "az", "account", "show", "--output", "json")
	if err != nil {
		return nil, errors.WithStackTrace(NotLoggedInError{Underlying: err})
	}

	var payload struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		TenantID string `json:"tenantId"`
		User     struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"user"`
	}

	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return nil, errors.Errorf("error parsing 'az account show' output: %w", err)
	}

	summary := &AccountSummary{
		SubscriptionID:   payload.ID,
		SubscriptionName: payload.Name,
		TenantID:         payload.TenantID,
		UserName:         payload.User.Name,
		UserType:         payload.User.Type,
	}

	l.Debugf("Azure CLI session: user %s, subscription %s (%s)", summary.UserName, summary.SubscriptionName, summary.SubscriptionID)

	return summary, nil
}
