package azurehelper

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// BlobServiceClient wraps Azure's azblob client to provide a simpler interface.
// It operates on the data plane of a single storage account.
type BlobServiceClient struct {
	client *azblob.Client
}

// CreateBlobServiceClient creates a data plane client for the given storage
// account blob endpoint, e.g. "https://mystorageaccount.blob.core.windows.net/".
func CreateBlobServiceClient(blobEndpoint string, credential azcore.TokenCredential) (*BlobServiceClient, error) {
	if blobEndpoint == "" {
		return nil, errors.New("blob endpoint is required")
	}

	client, err := azblob.NewClient(blobEndpoint, credential, nil)
	if err != nil {
		return nil, errors.Errorf("error creating blob service client: %w", err)
	}

	return &BlobServiceClient{client: client}, nil
}

// CreateContainer creates the given container. No public access level is set, so
// the container is private and every read requires authentication.
func (c *BlobServiceClient) CreateContainer(ctx context.Context, l log.Logger, containerName string) error {
	l.Infof("Creating container %s", containerName)

	if _, err := c.client.CreateContainer(ctx, containerName, nil); err != nil {
		return errors.Errorf("error creating container %s: %w", containerName, err)
	}

	l.Infof("Successfully created container %s", containerName)

	return nil
}
