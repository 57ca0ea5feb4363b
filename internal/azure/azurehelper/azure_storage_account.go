package azurehelper

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// storageAccountResourceType is the ARM resource type used in name availability checks.
const storageAccountResourceType = "Microsoft.Storage/storageAccounts"

// StorageAccountClient wraps Azure's armstorage client to provide a simpler interface.
type StorageAccountClient struct {
	client *armstorage.AccountsClient
}

// CreateStorageAccountClient creates a new storage account client for the given subscription.
func CreateStorageAccountClient(subscriptionID string, credential azcore.TokenCredential) (*StorageAccountClient, error) {
	if err := ValidateSubscriptionID(subscriptionID); err != nil {
		return nil, err
	}

	client, err := armstorage.NewAccountsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, errors.Errorf("error creating storage account client: %w", err)
	}

	return &StorageAccountClient{client: client}, nil
}

// CheckNameAvailability checks whether the given storage account name is free to
// claim. Storage account names are global across all of Azure, so an unavailable
// name may be taken by any tenant. Returns the service-provided reason when the
// name is not available.
func (c *StorageAccountClient) CheckNameAvailability(ctx context.Context, storageAccountName string) (bool, string, error) {
	params := armstorage.AccountCheckNameAvailabilityParameters{
		Name: to.Ptr(storageAccountName),
		Type: to.Ptr(storageAccountResourceType),
	}

	resp, err := c.client.CheckNameAvailability(ctx, params, nil)
	if err != nil {
		return false, "", errors.Errorf("error checking storage account name availability: %w", err)
	}

	if resp.NameAvailable != nil && *resp.NameAvailable {
		return true, "", nil
	}

	reason := "name is not available"
	if resp.Message != nil && *resp.Message != "" {
		reason = *resp.Message
	}

	return false, reason, nil
}

// CreateStorageAccount creates a storage account and blocks until provisioning
// completes. The account is locked down for remote state use: locally redundant
// standard storage, HTTPS only, TLS 1.2 minimum, and no public blob access.
func (c *StorageAccountClient) CreateStorageAccount(ctx context.Context, l log.Logger, resourceGroupName, storageAccountName, location string, tags map[string]string) (*armstorage.Account, error) {
	sku := armstorage.SKUNameStandardLRS
	kind := armstorage.KindStorageV2

	parameters := armstorage.AccountCreateParameters{
		SKU:      &armstorage.SKU{Name: &sku},
		Kind:     &kind,
		Location: to.Ptr(location),
		Tags:     ConvertToPointerMap(tags),
		Properties: &armstorage.AccountPropertiesCreateParameters{
			EnableHTTPSTrafficOnly: to.Ptr(true),
			MinimumTLSVersion:      to.Ptr(armstorage.MinimumTLSVersionTLS12),
			AllowBlobPublicAccess:  to.Ptr(false),
		},
	}

	l.Infof("Creating storage account %s in %s (Kind: %s, SKU: %s)", storageAccountName, location, kind, sku)

	pollerResp, err := c.client.BeginCreate(ctx, resourceGroupName, storageAccountName, parameters, nil)
	if err != nil {
		if IsConflictError(err) {
			return nil, errors.Errorf("storage account name %s was claimed after the availability check: %w", storageAccountName, err)
		}

		return nil, errors.Errorf("error creating storage account: %w", err)
	}

	resp, err := pollerResp.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, errors.Errorf("error waiting for storage account creation: %w", err)
	}

	l.Infof("Successfully created storage account %s", storageAccountName)

	return &resp.Account, nil
}

// BlobEndpoint returns the primary blob endpoint of the given account. Falls back
// to the public cloud endpoint format when the account does not report one.
func BlobEndpoint(account *armstorage.Account, storageAccountName string) string {
	if account != nil && account.Properties != nil &&
		account.Properties.PrimaryEndpoints != nil &&
		account.Properties.PrimaryEndpoints.Blob != nil {
		return *account.Properties.PrimaryEndpoints.Blob
	}

	return fmt.Sprintf("https://%s.blob.%s/", storageAccountName, defaultEndpointSuffix)
}

// ConvertToPointerMap converts tags to the pointer map the Azure SDK expects.
// Returns nil for an empty input so requests omit the tags field entirely.
func ConvertToPointerMap(input map[string]string) map[string]*string {
	if len(input) == 0 {
		return nil
	}

	result := make(map[string]*string, len(input))

	for k, v := range input {
		result[k] = to.Ptr(v)
	}

	return result
}
