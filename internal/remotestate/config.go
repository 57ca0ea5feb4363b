// Package remotestate provisions the Azure resources that back remote state
// storage: a resource group, a locked down storage account with a private
// container, and a user-assigned managed identity allowed to read and write
// state blobs. Provisioning is one-shot and strictly linear. The first failure
// aborts the run, nothing is retried, and nothing already created is rolled back.
package remotestate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/mitchellh/mapstructure"
)

const (
	maxTagCount       = 50
	maxTagKeyLength   = 512
	maxTagValueLength = 256
)

var (
	resourceGroupNameRegexp  = regexp.MustCompile(`^[a-zA-Z0-9_().-]{1,90}$`)
	storageAccountNameRegexp = regexp.MustCompile(`^[a-z0-9]{3,24}$`)
	containerNameRegexp      = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)
	identityNameRegexp       = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{2,127}$`)
	locationRegexp           = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Config is the raw provisioning configuration as assembled from CLI flags.
type Config map[string]any

// BootstrapConfig holds the parameters for one provisioning run.
type BootstrapConfig struct {
	// Tags are applied identically to every created resource that supports
	// tagging. Optional.
	Tags map[string]string `mapstructure:"tags"`

	// ResourceGroupName is the name of the resource group to create.
	ResourceGroupName string `mapstructure:"resource_group_name"`

	// Location is the Azure region every resource is created in.
	Location string `mapstructure:"location"`

	// StorageAccountName is the name of the storage account to create. Globally
	// unique across all of Azure.
	StorageAccountName string `mapstructure:"storage_account_name"`

	// ContainerName is the name of the private blob container that will hold
	// state files.
	ContainerName string `mapstructure:"container_name"`

	// IdentityName is the name of the user-assigned managed identity to create.
	IdentityName string `mapstructure:"identity_name"`
}

// ParseConfig decodes the raw configuration into a BootstrapConfig.
func ParseConfig(config Config) (*BootstrapConfig, error) {
	cfg := &BootstrapConfig{}

	if err := mapstructure.Decode(map[string]any(config), cfg); err != nil {
		return nil, errors.Errorf("error parsing bootstrap configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks every configuration value against the Azure naming rules and
// reports all violations at once rather than one at a time.
func (cfg *BootstrapConfig) Validate() error {
	var errs *errors.MultiError

	errs = errs.Append(validateResourceGroupName(cfg.ResourceGroupName))
	errs = errs.Append(validateLocation(cfg.Location))
	errs = errs.Append(validateStorageAccountName(cfg.StorageAccountName))
	errs = errs.Append(validateContainerName(cfg.ContainerName))
	errs = errs.Append(validateIdentityName(cfg.IdentityName))
	errs = errs.Append(validateTags(cfg.Tags))

	return errs.ErrorOrNil()
}

func validateResourceGroupName(name string) error {
	if name == "" {
		return MissingRequiredConfig("resource_group_name")
	}

	if !resourceGroupNameRegexp.MatchString(name) {
		return InvalidConfigError{
			Name:   "resource_group_name",
			Value:  name,
			Reason: "must be 1-90 characters of letters, digits, periods, underscores, hyphens and parentheses",
		}
	}

	if strings.HasSuffix(name, ".") {
		return InvalidConfigError{
			Name:   "resource_group_name",
			Value:  name,
			Reason: "cannot end with a period",
		}
	}

	return nil
}

func validateLocation(location string) error {
	if location == "" {
		return MissingRequiredConfig("location")
	}

	if !locationRegexp.MatchString(location) {
		return InvalidConfigError{
			Name:   "location",
			Value:  location,
			Reason: "must contain only letters, digits and hyphens",
		}
	}

	return nil
}

func validateStorageAccountName(name string) error {
	if name == "" {
		return MissingRequiredConfig("storage_account_name")
	}

	if !storageAccountNameRegexp.MatchString(name) {
		return InvalidConfigError{
			Name:   "storage_account_name",
			Value:  name,
			Reason: "must be 3-24 lowercase letters and digits",
		}
	}

	return nil
}

func validateContainerName(name string) error {
	if name == "" {
		return MissingRequiredConfig("container_name")
	}

	if len(name) < 3 || len(name) > 63 {
		return InvalidConfigError{
			Name:   "container_name",
			Value:  name,
			Reason: "must be 3-63 characters long",
		}
	}

	if !containerNameRegexp.MatchString(name) || strings.Contains(name, "--") {
		return InvalidConfigError{
			Name:   "container_name",
			Value:  name,
			Reason: "must be lowercase letters, digits and single hyphens, starting and ending with a letter or digit",
		}
	}

	return nil
}

func validateIdentityName(name string) error {
	if name == "" {
		return MissingRequiredConfig("identity_name")
	}

	if !identityNameRegexp.MatchString(name) {
		return InvalidConfigError{
			Name:   "identity_name",
			Value:  name,
			Reason: "must be 3-128 characters of letters, digits, hyphens and underscores, starting with a letter or digit",
		}
	}

	return nil
}

func validateTags(tags map[string]string) error {
	if len(tags) > maxTagCount {
		return InvalidConfigError{
			Name:   "tags",
			Value:  fmt.Sprintf("%d tags", len(tags)),
			Reason: fmt.Sprintf("at most %d tags are allowed", maxTagCount),
		}
	}

	for key, value := range tags {
		if key == "" {
			return InvalidConfigError{Name: "tags", Value: value, Reason: "tag keys cannot be empty"}
		}

		if len(key) > maxTagKeyLength {
			return InvalidConfigError{Name: "tags", Value: key, Reason: fmt.Sprintf("tag keys are limited to %d characters", maxTagKeyLength)}
		}

		if len(value) > maxTagValueLength {
			return InvalidConfigError{Name: "tags", Value: key, Reason: fmt.Sprintf("tag values are limited to %d characters", maxTagValueLength)}
		}
	}

	return nil
}
