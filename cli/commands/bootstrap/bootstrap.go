package bootstrap

import (
	"context"
	"fmt"

	"github.com/gruntwork-io/azure-bootstrap/internal/azure/azurehelper"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/implementations"
	"github.com/gruntwork-io/azure-bootstrap/internal/remotestate"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// Run provisions the remote state resources described by the configuration and
// prints the created resources plus a ready-to-paste backend block.
func Run(ctx context.Context, l log.Logger, opts *options.Options, cfg remotestate.Config) error {
	bootstrapCfg, err := remotestate.ParseConfig(cfg)
	if err != nil {
		return err
	}

	credential, subscriptionID, err := azurehelper.GetAzureCredentials(l, opts.Env)
	if err != nil {
		return err
	}

	services, err := implementations.NewServices(subscriptionID, credential)
	if err != nil {
		return err
	}

	runner := remotestate.NewRunner(services)

	result, err := runner.Run(ctx, l, opts, bootstrapCfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(opts.Writer, result.Summary())
	fmt.Fprintln(opts.Writer, "Add this backend configuration to your OpenTofu/Terraform code:")
	fmt.Fprintln(opts.Writer)
	fmt.Fprint(opts.Writer, result.BackendConfig())

	return nil
}
