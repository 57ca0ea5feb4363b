package delete

import (
	"context"

	"github.com/gruntwork-io/azure-bootstrap/internal/azure/azurehelper"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/implementations"
	"github.com/gruntwork-io/azure-bootstrap/internal/remotestate"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// Run deletes the named resource group after an explicit confirmation.
func Run(ctx context.Context, l log.Logger, opts *options.Options, cfg *remotestate.DeleteConfig) error {
	credential, subscriptionID, err := azurehelper.GetAzureCredentials(l, opts.Env)
	if err != nil {
		return err
	}

	services, err := implementations.NewServices(subscriptionID, credential)
	if err != nil {
		return err
	}

	runner := remotestate.NewRunner(services)

	return runner.Delete(ctx, l, opts, cfg)
}
