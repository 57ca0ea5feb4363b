package remotestate

import (
	"context"
	"fmt"

	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// DeleteConfig holds the parameters for deleting a previously bootstrapped
// resource group.
type DeleteConfig struct {
	ResourceGroupName string `mapstructure:"resource_group_name"`
}

// Validate checks the delete parameters.
func (cfg *DeleteConfig) Validate() error {
	return validateResourceGroupName(cfg.ResourceGroupName)
}

// Delete removes the resource group and everything in it after an explicit
// yes/no confirmation. Deleting a resource group that does not exist is a
// no-op. This is a standalone cleanup command, not a rollback. Failed
// bootstrap runs never trigger it.
func (r *Runner) Delete(ctx context.Context, l log.Logger, opts *options.Options, cfg *DeleteConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	prompt := fmt.Sprintf("WARNING: This deletes resource group %s and every resource in it, including any remote state. Are you sure?", cfg.ResourceGroupName)

	confirmed, err := r.PromptYesNo(ctx, l, prompt, opts)
	if err != nil {
		return err
	}

	if !confirmed {
		l.Infof("Deletion of resource group %s cancelled", cfg.ResourceGroupName)
		return nil
	}

	return r.Services.ResourceGroups.DeleteResourceGroup(ctx, l, cfg.ResourceGroupName)
}
