package interfaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// ResourceGroupService defines the resource group operations used during provisioning.
type ResourceGroupService interface {
	// ResourceGroupExists checks if the named resource group exists in the subscription.
	ResourceGroupExists(ctx context.Context, name string) (bool, error)

	// CreateResourceGroup creates the named resource group in the given location.
	CreateResourceGroup(ctx context.Context, l log.Logger, name, location string, tags map[string]string) (*armresources.ResourceGroup, error)

	// DeleteResourceGroup deletes the named resource group and everything in it,
	// blocking until deletion completes. Deleting a group that does not exist
	// is a no-op.
	DeleteResourceGroup(ctx context.Context, l log.Logger, name string) error
}
