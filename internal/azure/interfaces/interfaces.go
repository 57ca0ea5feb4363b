// Package interfaces defines the Azure service seams the provisioning flow
// depends on. Production implementations backed by the Azure SDK live in the
// implementations package; tests substitute in-memory fakes.
package interfaces

// Services bundles the per-resource services a provisioning run needs.
type Services struct {
	ResourceGroups  ResourceGroupService
	StorageAccounts StorageAccountService
	Containers      ContainerService
	Identities      IdentityService
	RoleAssignments RoleAssignmentService
	Subscriptions   SubscriptionService
}
