package azurehelper

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// IdentityClient wraps Azure's armmsi client to provide a simpler interface.
type IdentityClient struct {
	client *armmsi.UserAssignedIdentitiesClient
}

// CreateIdentityClient creates a new managed identity client for the given subscription.
func CreateIdentityClient(subscriptionID string, credential azcore.TokenCredential) (*IdentityClient, error) {
	if err := ValidateSubscriptionID(subscriptionID); err != nil {
		return nil, err
	}

	client, err := armmsi.NewUserAssignedIdentitiesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, errors.Errorf("error creating managed identity client: %w", err)
	}

	return &IdentityClient{client: client}, nil
}

// CreateUserAssignedIdentity creates a user-assigned managed identity in the given
// resource group. Creation is synchronous; the returned identity carries the
// principal ID needed for role assignments.
func (c *IdentityClient) CreateUserAssignedIdentity(ctx context.Context, l log.Logger, resourceGroupName, identityName, location string, tags map[string]string) (*armmsi.Identity, error) {
	l.Infof("Creating user-assigned managed identity %s in resource group %s", identityName, resourceGroupName)

	parameters := armmsi.Identity{
		Location: to.Ptr(location),
		Tags:     ConvertToPointerMap(tags),
	}

	resp, err := c.client.CreateOrUpdate(ctx, resourceGroupName, identityName, parameters, nil)
	if err != nil {
		return nil, errors.Errorf("error creating managed identity %s: %w", identityName, err)
	}

	l.Infof("Successfully created managed identity %s", identityName)

	return &resp.Identity, nil
}
