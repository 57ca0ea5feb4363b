package interfaces

import "context"

// SubscriptionService reads subscription metadata from the management plane.
type SubscriptionService interface {
	// GetSubscriptionDisplayName looks up the display name of the subscription the
	// services are bound to. A failure here means the credential does not work.
	GetSubscriptionDisplayName(ctx context.Context) (string, error)
}
