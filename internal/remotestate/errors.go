package remotestate

import (
	"fmt"
)

// MissingRequiredConfig is returned for each required configuration value that is not set.
type MissingRequiredConfig string

func (configName MissingRequiredConfig) Error() string {
	return "Missing required configuration " + string(configName)
}

// InvalidConfigError is returned for each configuration value that fails validation.
type InvalidConfigError struct {
	Name   string
	Value  string
	Reason string
}

func (err InvalidConfigError) Error() string {
	return fmt.Sprintf("Invalid value %q for %s: %s", err.Value, err.Name, err.Reason)
}

// AzureCLINotFoundError is returned when the az executable is not on the PATH.
type AzureCLINotFoundError struct{}

func (err AzureCLINotFoundError) Error() string {
	return "Azure CLI (az) not found in PATH. Install it from https://learn.microsoft.com/cli/azure/install-azure-cli and run 'az login'"
}

// AzureCLIOutdatedError is returned when the installed Azure CLI is older than the
// minimum supported version.
type AzureCLIOutdatedError struct {
	InstalledVersion string
	MinimumVersion   string
}

func (err AzureCLIOutdatedError) Error() string {
	return fmt.Sprintf("Azure CLI version %s is older than the minimum supported version %s. Run 'az upgrade' to update it", err.InstalledVersion, err.MinimumVersion)
}

// NotLoggedInError is returned when no working Azure session is available, either
// from the CLI or from the SDK credential chain.
type NotLoggedInError struct {
	Underlying error
}

func (err NotLoggedInError) Error() string {
	if err.Underlying != nil {
		return fmt.Sprintf("No authenticated Azure session found. Run 'az login' first. Underlying error: %v", err.Underlying)
	}

	return "No authenticated Azure session found. Run 'az login' first"
}

func (err NotLoggedInError) Unwrap() error {
	return err.Underlying
}

// ResourceGroupAlreadyExistsError is returned when the target resource group is
// already present. Bootstrap provisions from scratch and never adopts or updates
// existing resources.
type ResourceGroupAlreadyExistsError struct {
	Name string
}

func (err ResourceGroupAlreadyExistsError) Error() string {
	return fmt.Sprintf("Resource group %s already exists. Bootstrap will not touch existing resources, pick an unused name or delete the group first", err.Name)
}

// StorageAccountNameUnavailableError is returned when the requested storage
// account name is taken. Storage account names are global across all of Azure.
type StorageAccountNameUnavailableError struct {
	Name   string
	Reason string
}

func (err StorageAccountNameUnavailableError) Error() string {
	return fmt.Sprintf("Storage account name %s is not available: %s", err.Name, err.Reason)
}

// BootstrapAbortedError is returned when the user declines the confirmation prompt.
type BootstrapAbortedError struct{}

func (err BootstrapAbortedError) Error() string {
	return "Aborted at user request, no resources were created"
}
