// Package delete implements the delete command, which removes a previously
// bootstrapped resource group and everything in it.
package delete

import (
	"github.com/gruntwork-io/azure-bootstrap/internal/remotestate"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "delete"

	ResourceGroupFlagName = "resource-group"
)

func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     ResourceGroupFlagName,
			Usage:    "Name of the resource group to delete.",
			Required: true,
		},
	}
}

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:  CommandName,
		Usage: "Delete a bootstrapped resource group, including any remote state stored in it.",
		Flags: NewFlags(opts),
		Action: func(ctx *cli.Context) error {
			cfg := &remotestate.DeleteConfig{
				ResourceGroupName: ctx.String(ResourceGroupFlagName),
			}

			return Run(ctx.Context, opts.Logger, opts, cfg)
		},
	}
}
