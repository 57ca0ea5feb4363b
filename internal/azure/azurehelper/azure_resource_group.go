package azurehelper

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// ResourceGroupClient wraps Azure's armresources client to provide a simpler interface.
type ResourceGroupClient struct {
	client *armresources.ResourceGroupsClient
}

// CreateResourceGroupClient creates a new resource group client for the given subscription.
func CreateResourceGroupClient(subscriptionID string, credential azcore.TokenCredential) (*ResourceGroupClient, error) {
	if err := ValidateSubscriptionID(subscriptionID); err != nil {
		return nil, err
	}

	client, err := armresources.NewResourceGroupsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, errors.Errorf("error creating resource group client: %w", err)
	}

	return &ResourceGroupClient{client: client}, nil
}

// ResourceGroupExists checks if a resource group exists.
func (c *ResourceGroupClient) ResourceGroupExists(ctx context.Context, resourceGroupName string) (bool, error) {
	_, err := c.client.Get(ctx, resourceGroupName, nil)
	if err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}

		return false, errors.Errorf("error checking if resource group exists: %w", err)
	}

	return true, nil
}

// CreateResourceGroup creates a resource group in the given location. The caller is
// expected to have checked that no group with this name exists.
func (c *ResourceGroupClient) CreateResourceGroup(ctx context.Context, l log.Logger, resourceGroupName, location string, tags map[string]string) (*armresources.ResourceGroup, error) {
	l.Infof("Creating resource group %s in %s", resourceGroupName, location)

	resourceGroup := armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     ConvertToPointerMap(tags),
	}

	resp, err := c.client.CreateOrUpdate(ctx, resourceGroupName, resourceGroup, nil)
	if err != nil {
		return nil, errors.Errorf("error creating resource group %s: %w", resourceGroupName, err)
	}

	l.Infof("Successfully created resource group %s", resourceGroupName)

	return &resp.ResourceGroup, nil
}

// DeleteResourceGroup deletes a resource group and everything in it, blocking until
// the deletion completes. Deleting a group that does not exist is a no-op.
func (c *ResourceGroupClient) DeleteResourceGroup(ctx context.Context, l log.Logger, resourceGroupName string) error {
	_, err := c.client.Get(ctx, resourceGroupName, nil)
	if err != nil {
		if IsNotFoundError(err) {
			l.Infof("Resource group %s doesn't exist, nothing to delete", resourceGroupName)
			return nil
		}

		return errors.Errorf("error checking resource group existence: %w", err)
	}

	l.Infof("Deleting resource group %s", resourceGroupName)

	poller, err := c.client.BeginDelete(ctx, resourceGroupName, nil)
	if err != nil {
		return errors.Errorf("error starting resource group deletion: %w", err)
	}

	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return errors.Errorf("error deleting resource group: %w", err)
	}

	l.Infof("Successfully deleted resource group %s", resourceGroupName)

	return nil
}
