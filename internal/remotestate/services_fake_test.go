package remotestate_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/interfaces"
	"github.com/gruntwork-io/azure-bootstrap/internal/remotestate"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// fakeAzure implements every service interface in memory, recording the calls
// made against it so tests can assert on ordering and arguments.
type fakeAzure struct {
	rgExistsErr        error
	createRGErr        error
	deleteRGErr        error
	checkNameErr       error
	createSAErr        error
	createContainerErr error
	createIdentityErr  error
	assignRoleErr      error
	subscriptionErr    error

	rgTags       map[string]string
	saTags       map[string]string
	identityTags map[string]string

	subscriptionName  string
	unavailableReason string
	gotBlobEndpoint   string
	gotScope          string
	gotPrincipalID    string

	calls []string

	rgExists      bool
	nameAvailable bool
}

func newFakeAzure() *fakeAzure {
	return &fakeAzure{
		nameAvailable:    true,
		subscriptionName: "Fake Subscription",
	}
}

func (f *fakeAzure) services() interfaces.Services {
	return interfaces.Services{
		ResourceGroups:  f,
		StorageAccounts: f,
		Containers:      f,
		Identities:      f,
		RoleAssignments: f,
		Subscriptions:   f,
	}
}

func (f *fakeAzure) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	f.calls = append(f.calls, "ResourceGroupExists")
	return f.rgExists, f.rgExistsErr
}

func (f *fakeAzure) CreateResourceGroup(ctx context.Context, l log.Logger, name, location string, tags map[string]string) (*armresources.ResourceGroup, error) {
	f.calls = append(f.calls, "CreateResourceGroup")

	if f.createRGErr != nil {
		return nil, f.createRGErr
	}

	f.rgTags = tags

	return &armresources.ResourceGroup{
		ID:       to.Ptr("/subscriptions/12345678-1234-1234-1234-123456789abc/resourceGroups/" + name),
		Name:     to.Ptr(name),
		Location: to.Ptr(location),
	}, nil
}

func (f *fakeAzure) DeleteResourceGroup(ctx context.Context, l log.Logger, name string) error {
	f.calls = append(f.calls, "DeleteResourceGroup")
	return f.deleteRGErr
}

func (f *fakeAzure) CheckNameAvailability(ctx context.Context, name string) (bool, string, error) {
	f.calls = append(f.calls, "CheckNameAvailability")

	if f.checkNameErr != nil {
		return false, "", f.checkNameErr
	}

	if !f.nameAvailable {
		return false, f.unavailableReason, nil
	}

	return true, "", nil
}

func (f *fakeAzure) CreateStorageAccount(ctx context.Context, l log.Logger, resourceGroupName, name, location string, tags map[string]string) (*armstorage.Account, error) {
	f.calls = append(f.calls, "CreateStorageAccount")

	if f.createSAErr != nil {
		return nil, f.createSAErr
	}

	f.saTags = tags

	return &armstorage.Account{
		ID: to.Ptr(fmt.Sprintf("/subscriptions/12345678-1234-1234-1234-123456789abc/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s",
			resourceGroupName, name)),
		Name: to.Ptr(name),
		Properties: &armstorage.AccountProperties{
			PrimaryEndpoints: &armstorage.Endpoints{
				Blob: to.Ptr(fmt.Sprintf("https://%s.blob.core.windows.net/", name)),
			},
		},
	}, nil
}

func (f *fakeAzure) CreateContainer(ctx context.Context, l log.Logger, blobEndpoint, containerName string) error {
	f.calls = append(f.calls, "CreateContainer")
	f.gotBlobEndpoint = blobEndpoint

	return f.createContainerErr
}

func (f *fakeAzure) CreateUserAssignedIdentity(ctx context.Context, l log.Logger, resourceGroupName, name, location string, tags map[string]string) (*armmsi.Identity, error) {
	f.calls = append(f.calls, "CreateUserAssignedIdentity")

	if f.createIdentityErr != nil {
		return nil, f.createIdentityErr
	}

	f.identityTags = tags

	return &armmsi.Identity{
		ID: to.Ptr(fmt.Sprintf("/subscriptions/12345678-1234-1234-1234-123456789abc/resourceGroups/%s/providers/Microsoft.ManagedIdentity/userAssignedIdentities/%s",
			resourceGroupName, name)),
		Name:     to.Ptr(name),
		Location: to.Ptr(location),
		Properties: &armmsi.UserAssignedIdentityProperties{
			PrincipalID: to.Ptr("99999999-9999-9999-9999-999999999999"),
			ClientID:    to.Ptr("88888888-8888-8888-8888-888888888888"),
		},
	}, nil
}

func (f *fakeAzure) AssignStorageBlobDataContributorRole(ctx context.Context, l log.Logger, scope, principalID string) error {
	f.calls = append(f.calls, "AssignStorageBlobDataContributorRole")

	if f.assignRoleErr != nil {
		return f.assignRoleErr
	}

	f.gotScope = scope
	f.gotPrincipalID = principalID

	return nil
}

func (f *fakeAzure) GetSubscriptionDisplayName(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "GetSubscriptionDisplayName")
	return f.subscriptionName, f.subscriptionErr
}

// fakeAzCLI serves canned Azure CLI output for preflight checks.
func fakeAzCLI(ctx context.Context, l log.Logger, command string, args ...string) (string, error) {
	switch strings.Join(args, " ") {
	case "version --output json":
		return `{"azure-cli": "2.75.0", "azure-cli-core": "2.75.0"}`, nil
	case "account show --output json":
		return `{
			"environmentName": "AzureCloud",
			"id": "12345678-1234-1234-1234-123456789abc",
			"isDefault": true,
			"name": "CLI Profile Subscription",
			"state": "Enabled",
			"tenantId": "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
			"user": {"name": "dev@example.com", "type": "user"}
		}`, nil
	default:
		return "", fmt.Errorf("unexpected command: %s %s", command, strings.Join(args, " "))
	}
}

func fakePreflight() *remotestate.Preflight {
	return &remotestate.Preflight{
		LookPath:   func(string) (string, error) { return "/usr/bin/az", nil },
		RunCommand: fakeAzCLI,
	}
}

func validConfig() *remotestate.BootstrapConfig {
	return &remotestate.BootstrapConfig{
		ResourceGroupName:  "tfstate-rg",
		Location:           "eastus",
		StorageAccountName: "tfstate1234",
		ContainerName:      "tfstate",
		IdentityName:       "tfstate-identity",
	}
}
