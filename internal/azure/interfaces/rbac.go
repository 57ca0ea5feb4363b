package interfaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// IdentityService defines the managed identity operations used during provisioning.
type IdentityService interface {
	// CreateUserAssignedIdentity creates a user-assigned managed identity in the
	// given resource group. The returned identity carries the principal ID needed
	// for role assignments.
	CreateUserAssignedIdentity(ctx context.Context, l log.Logger, resourceGroupName, name, location string, tags map[string]string) (*armmsi.Identity, error)
}

// RoleAssignmentService defines the RBAC operations used during provisioning.
type RoleAssignmentService interface {
	// AssignStorageBlobDataContributorRole grants the built-in "Storage Blob Data
	// Contributor" role to the given principal at the given scope.
	AssignStorageBlobDataContributorRole(ctx context.Context, l log.Logger, scope, principalID string) error
}
