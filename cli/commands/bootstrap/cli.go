// Package bootstrap implements the bootstrap command, which provisions the
// Azure resources that back remote state storage.
package bootstrap

import (
	"strings"

	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/internal/remotestate"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "bootstrap"

	ResourceGroupFlagName  = "resource-group"
	LocationFlagName       = "location"
	StorageAccountFlagName = "storage-account"
	ContainerFlagName      = "container"
	IdentityFlagName       = "identity"
	TagFlagName            = "tag"
)

func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     ResourceGroupFlagName,
			Usage:    "Name of the resource group to create. Must not already exist.",
			Required: true,
		},
		&cli.StringFlag{
			Name:     LocationFlagName,
			Usage:    "Azure region to create every resource in, e.g. westeurope.",
			Required: true,
		},
		&cli.StringFlag{
			Name:     StorageAccountFlagName,
			Usage:    "Name of the storage account to create. Must be globally unique.",
			Required: true,
		},
		&cli.StringFlag{
			Name:     ContainerFlagName,
			Usage:    "Name of the private blob container that will hold state files.",
			Required: true,
		},
		&cli.StringFlag{
			Name:     IdentityFlagName,
			Usage:    "Name of the user-assigned managed identity to create.",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  TagFlagName,
			Usage: "Tag applied to every created resource, as key=value. May be repeated.",
		},
	}
}

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:  CommandName,
		Usage: "Create a resource group, storage account, private container and managed identity for remote state.",
		Flags: NewFlags(opts),
		Action: func(ctx *cli.Context) error {
			cfg, err := configFromContext(ctx)
			if err != nil {
				return err
			}

			return Run(ctx.Context, opts.Logger, opts, cfg)
		},
	}
}

func configFromContext(ctx *cli.Context) (remotestate.Config, error) {
	tags, err := ParseTags(ctx.StringSlice(TagFlagName))
	if err != nil {
		return nil, err
	}

	return remotestate.Config{
		"resource_group_name":  ctx.String(ResourceGroupFlagName),
		"location":             ctx.String(LocationFlagName),
		"storage_account_name": ctx.String(StorageAccountFlagName),
		"container_name":       ctx.String(ContainerFlagName),
		"identity_name":        ctx.String(IdentityFlagName),
		"tags":                 tags,
	}, nil
}

// ParseTags converts repeated key=value flag values into a tag map.
func ParseTags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	tags := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Errorf("invalid tag %q, expected key=value", pair)
		}

		tags[key] = value
	}

	return tags, nil
}
