package azurehelper

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization"
	"github.com/google/uuid"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// RoleAssignmentClient wraps Azure's armauthorization client to provide a simpler interface.
type RoleAssignmentClient struct {
	client         *armauthorization.RoleAssignmentsClient
	subscriptionID string
}

// CreateRoleAssignmentClient creates a new role assignment client for the given subscription.
func CreateRoleAssignmentClient(subscriptionID string, credential azcore.TokenCredential) (*RoleAssignmentClient, error) {
	if err := ValidateSubscriptionID(subscriptionID); err != nil {
		return nil, err
	}

	client, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, errors.Errorf("error creating role assignment client: %w", err)
	}

	return &RoleAssignmentClient{
		client:         client,
		subscriptionID: subscriptionID,
	}, nil
}

// StorageBlobDataContributorRoleDefinitionID returns the subscription-scoped
// resource ID of the built-in "Storage Blob Data Contributor" role.
func StorageBlobDataContributorRoleDefinitionID(subscriptionID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		subscriptionID, storageBlobDataContributorRoleID)
}

// AssignStorageBlobDataContributorRole grants the built-in "Storage Blob Data
// Contributor" role to the given principal at the given scope. Role assignment
// names must be globally unique UUIDs, so a fresh one is generated per call.
func (c *RoleAssignmentClient) AssignStorageBlobDataContributorRole(ctx context.Context, l log.Logger, scope, principalID string) (*armauthorization.RoleAssignment, error) {
	roleDefinitionID := StorageBlobDataContributorRoleDefinitionID(c.subscriptionID)
	roleAssignmentName := uuid.New().String()

	l.Debugf("Creating role assignment %s", roleAssignmentName)
	l.Debugf("Role definition ID: %s", roleDefinitionID)
	l.Debugf("Scope: %s", scope)

	parameters := armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			RoleDefinitionID: to.Ptr(roleDefinitionID),
			PrincipalID:      to.Ptr(principalID),
		},
	}

	resp, err := c.client.Create(ctx, scope, roleAssignmentName, parameters, nil)
	if err != nil {
		if IsPermissionError(err) {
			return nil, errors.Errorf("creating role assignments requires the Owner or User Access Administrator role on the storage account: %w", err)
		}

		return nil, errors.Errorf("error creating role assignment: %w", err)
	}

	l.Infof("Granted Storage Blob Data Contributor to principal %s", principalID)

	return &resp.RoleAssignment, nil
}
