package interfaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// StorageAccountService defines the storage account operations used during provisioning.
type StorageAccountService interface {
	// CheckNameAvailability checks whether the given storage account name is free
	// to claim. Returns the service-provided reason when it is not.
	CheckNameAvailability(ctx context.Context, name string) (bool, string, error)

	// CreateStorageAccount creates the storage account and blocks until
	// provisioning completes.
	CreateStorageAccount(ctx context.Context, l log.Logger, resourceGroupName, name, location string, tags map[string]string) (*armstorage.Account, error)
}

// ContainerService defines the blob container operations used during provisioning.
// Containers are created through the storage account's data plane.
type ContainerService interface {
	// CreateContainer creates a private container at the given blob endpoint.
	CreateContainer(ctx context.Context, l log.Logger, blobEndpoint, containerName string) error
}
