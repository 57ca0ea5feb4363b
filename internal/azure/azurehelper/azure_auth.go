package azurehelper

import (
	"regexp"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// subscriptionIDEnvVars are checked in order; the first non-empty value wins.
var subscriptionIDEnvVars = []string{"AZURE_SUBSCRIPTION_ID", "ARM_SUBSCRIPTION_ID"}

var subscriptionIDRegexp = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// GetAzureCredentials builds a DefaultAzureCredential and resolves the subscription
// ID from the environment. The credential chains environment, workload identity,
// managed identity and Azure CLI authentication, in that order.
func GetAzureCredentials(l log.Logger, env map[string]string) (*azidentity.DefaultAzureCredential, string, error) {
	subscriptionID := SubscriptionIDFromEnv(env)
	if subscriptionID == "" {
		return nil, "", errors.New("subscription ID is required: set AZURE_SUBSCRIPTION_ID or ARM_SUBSCRIPTION_ID")
	}

	if err := ValidateSubscriptionID(subscriptionID); err != nil {
		return nil, "", err
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, "", errors.Errorf("error creating azure default credential: %w", err)
	}

	l.Debugf("Resolved subscription ID %s from environment", subscriptionID)

	return credential, subscriptionID, nil
}

// SubscriptionIDFromEnv returns the subscription ID from the given environment
// snapshot. AZURE_SUBSCRIPTION_ID takes precedence over ARM_SUBSCRIPTION_ID.
func SubscriptionIDFromEnv(env map[string]string) string {
	for _, key := range subscriptionIDEnvVars {
		if value := env[key]; value != "" {
			return value
		}
	}

	return ""
}

// ValidateSubscriptionID checks that the given subscription ID is a valid UUID.
func ValidateSubscriptionID(subscriptionID string) error {
	if !subscriptionIDRegexp.MatchString(strings.ToLower(subscriptionID)) {
		return errors.Errorf("invalid subscription ID format: %s", subscriptionID)
	}

	return nil
}
