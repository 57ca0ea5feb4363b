// Package implementations provides Azure SDK backed implementations of the
// service interfaces.
package implementations

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/azurehelper"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/interfaces"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// ProductionServices implements every service interface against the real Azure
// management and data planes. All management plane clients are built up front so
// a bad subscription ID fails before any provisioning starts. The data plane blob
// client is built per call since its endpoint is only known once the storage
// account exists.
type ProductionServices struct {
	resourceGroups  *azurehelper.ResourceGroupClient
	storageAccounts *azurehelper.StorageAccountClient
	identities      *azurehelper.IdentityClient
	roleAssignments *azurehelper.RoleAssignmentClient
	credential      azcore.TokenCredential
	subscriptionID  string
}

var (
	_ interfaces.ResourceGroupService  = (*ProductionServices)(nil)
	_ interfaces.StorageAccountService = (*ProductionServices)(nil)
	_ interfaces.ContainerService      = (*ProductionServices)(nil)
	_ interfaces.IdentityService       = (*ProductionServices)(nil)
	_ interfaces.RoleAssignmentService = (*ProductionServices)(nil)
	_ interfaces.SubscriptionService   = (*ProductionServices)(nil)
)

// NewProductionServices builds the SDK clients for the given subscription.
func NewProductionServices(subscriptionID string, credential azcore.TokenCredential) (*ProductionServices, error) {
	resourceGroups, err := azurehelper.CreateResourceGroupClient(subscriptionID, credential)
	if err != nil {
		return nil, err
	}

	storageAccounts, err := azurehelper.CreateStorageAccountClient(subscriptionID, credential)
	if err != nil {
		return nil, err
	}

	identities, err := azurehelper.CreateIdentityClient(subscriptionID, credential)
	if err != nil {
		return nil, err
	}

	roleAssignments, err := azurehelper.CreateRoleAssignmentClient(subscriptionID, credential)
	if err != nil {
		return nil, err
	}

	return &ProductionServices{
		resourceGroups:  resourceGroups,
		storageAccounts: storageAccounts,
		identities:      identities,
		roleAssignments: roleAssignments,
		credential:      credential,
		subscriptionID:  subscriptionID,
	}, nil
}

// NewServices builds the full service bundle for the given subscription.
func NewServices(subscriptionID string, credential azcore.TokenCredential) (interfaces.Services, error) {
	production, err := NewProductionServices(subscriptionID, credential)
	if err != nil {
		return interfaces.Services{}, err
	}

	return interfaces.Services{
		ResourceGroups:  production,
		StorageAccounts: production,
		Containers:      production,
		Identities:      production,
		RoleAssignments: production,
		Subscriptions:   production,
	}, nil
}

func (s *ProductionServices) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	return s.resourceGroups.ResourceGroupExists(ctx, name)
}

func (s *ProductionServices) CreateResourceGroup(ctx context.Context, l log.Logger, name, location string, tags map[string]string) (*armresources.ResourceGroup, error) {
	return s.resourceGroups.CreateResourceGroup(ctx, l, name, location, tags)
}

func (s *ProductionServices) DeleteResourceGroup(ctx context.Context, l log.Logger, name string) error {
	return s.resourceGroups.DeleteResourceGroup(ctx, l, name)
}

func (s *ProductionServices) CheckNameAvailability(ctx context.Context, name string) (bool, string, error) {
	return s.storageAccounts.CheckNameAvailability(ctx, name)
}

func (s *ProductionServices) CreateStorageAccount(ctx context.Context, l log.Logger, resourceGroupName, name, location string, tags map[string]string) (*armstorage.Account, error) {
	return s.storageAccounts.CreateStorageAccount(ctx, l, resourceGroupName, name, location, tags)
}

func (s *ProductionServices) CreateContainer(ctx context.Context, l log.Logger, blobEndpoint, containerName string) error {
	client, err := azurehelper.CreateBlobServiceClient(blobEndpoint, s.credential)
	if err != nil {
		return err
	}

	return client.CreateContainer(ctx, l, containerName)
}

func (s *ProductionServices) CreateUserAssignedIdentity(ctx context.Context, l log.Logger, resourceGroupName, name, location string, tags map[string]string) (*armmsi.Identity, error) {
	return s.identities.CreateUserAssignedIdentity(ctx, l, resourceGroupName, name, location, tags)
}

func (s *ProductionServices) AssignStorageBlobDataContributorRole(ctx context.Context, l log.Logger, scope, principalID string) error {
	_, err := s.roleAssignments.AssignStorageBlobDataContributorRole(ctx, l, scope, principalID)
	return err
}

func (s *ProductionServices) GetSubscriptionDisplayName(ctx context.Context) (string, error) {
	return azurehelper.GetSubscriptionDisplayName(ctx, s.credential, s.subscriptionID)
}
