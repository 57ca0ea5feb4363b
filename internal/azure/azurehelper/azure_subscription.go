package azurehelper

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
)

// GetSubscriptionDisplayName looks up the display name of the given subscription.
// This is also the cheapest management plane call to verify that the credential
// actually works before any resources are touched.
func GetSubscriptionDisplayName(ctx context.Context, credential azcore.TokenCredential, subscriptionID string) (string, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return "", errors.Errorf("error creating subscriptions client: %w", err)
	}

	resp, err := client.Get(ctx, subscriptionID, nil)
	if err != nil {
		return "", errors.Errorf("error getting subscription %s: %w", subscriptionID, err)
	}

	if resp.DisplayName != nil && *resp.DisplayName != "" {
		return *resp.DisplayName, nil
	}

	return subscriptionID, nil
}
