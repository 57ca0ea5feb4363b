package remotestate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/azurehelper"
	"github.com/gruntwork-io/azure-bootstrap/internal/azure/interfaces"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/gruntwork-io/azure-bootstrap/shell"
)

// ConfirmFunc blocks for a user decision and reports it. Both prompts the runner
// uses have this shape so tests can substitute canned answers.
type ConfirmFunc func(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error)

// Runner executes the bootstrap flow against a set of Azure services.
type Runner struct {
	// Services are the Azure services provisioning runs against.
	Services interfaces.Services

	// Preflight verifies the local Azure CLI before anything else happens.
	Preflight *Preflight

	// Confirm blocks for user confirmation before any resource is created.
	Confirm ConfirmFunc

	// PromptYesNo asks for an explicit yes/no answer before destructive operations.
	PromptYesNo ConfirmFunc
}

// NewRunner returns a Runner wired for real usage: real CLI preflight, a
// single-keypress confirmation before provisioning, and a yes/no prompt before
// deletion.
func NewRunner(services interfaces.Services) *Runner {
	return &Runner{
		Services:    services,
		Preflight:   NewPreflight(),
		Confirm:     shell.PressAnyKeyToContinue,
		PromptYesNo: shell.PromptUserForYesNo,
	}
}

// Run provisions the full remote state stack in a fixed order: resource group,
// storage account, private container, managed identity, role assignment. The
// first error aborts the run. Nothing is retried and nothing already created is
// removed. A Result is returned only when every step succeeded.
func (r *Runner) Run(ctx context.Context, l log.Logger, opts *options.Options, cfg *BootstrapConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	summary, err := r.Preflight.Check(ctx, l)
	if err != nil {
		return nil, err
	}

	subscriptionName, err := r.Services.Subscriptions.GetSubscriptionDisplayName(ctx)
	if err != nil {
		return nil, errors.WithStackTrace(NotLoggedInError{Underlying: err})
	}

	l.Debugf("Verified management plane access to subscription %s", subscriptionName)

	confirmed, err := r.Confirm(ctx, l, confirmationPrompt(summary, cfg), opts)
	if err != nil {
		return nil, err
	}

	if !confirmed {
		return nil, errors.WithStackTrace(BootstrapAbortedError{})
	}

	return r.provision(ctx, l, cfg)
}

// confirmationPrompt builds the text shown before provisioning starts. The
// subscription name echoed here comes from the CLI profile, which may differ
// from the subscription the SDK credential resolved when AZURE_SUBSCRIPTION_ID
// points elsewhere.
func confirmationPrompt(summary *AccountSummary, cfg *BootstrapConfig) string {
	var sb strings.Builder

	sb.WriteString("About to create Azure remote state resources:\n\n")
	fmt.Fprintf(&sb, "  Account:          %s (%s)\n", summary.UserName, summary.AccountDomain())
	fmt.Fprintf(&sb, "  Subscription:     %s\n", summary.SubscriptionName)
	fmt.Fprintf(&sb, "  Resource group:   %s (%s)\n", cfg.ResourceGroupName, cfg.Location)
	fmt.Fprintf(&sb, "  Storage account:  %s\n", cfg.StorageAccountName)
	fmt.Fprintf(&sb, "  Container:        %s\n", cfg.ContainerName)
	fmt.Fprintf(&sb, "  Managed identity: %s\n", cfg.IdentityName)
	sb.WriteString("\nPress any key to continue, or ESC to abort... ")

	return sb.String()
}

func (r *Runner) provision(ctx context.Context, l log.Logger, cfg *BootstrapConfig) (*Result, error) {
	exists, err := r.Services.ResourceGroups.ResourceGroupExists(ctx, cfg.ResourceGroupName)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, errors.WithStackTrace(ResourceGroupAlreadyExistsError{Name: cfg.ResourceGroupName})
	}

	resourceGroup, err := r.Services.ResourceGroups.CreateResourceGroup(ctx, l, cfg.ResourceGroupName, cfg.Location, cfg.Tags)
	if err != nil {
		return nil, err
	}

	available, reason, err := r.Services.StorageAccounts.CheckNameAvailability(ctx, cfg.StorageAccountName)
	if err != nil {
		return nil, err
	}

	if !available {
		return nil, errors.WithStackTrace(StorageAccountNameUnavailableError{Name: cfg.StorageAccountName, Reason: reason})
	}

	account, err := r.Services.StorageAccounts.CreateStorageAccount(ctx, l, cfg.ResourceGroupName, cfg.StorageAccountName, cfg.Location, cfg.Tags)
	if err != nil {
		return nil, err
	}

	if account == nil || account.ID == nil {
		return nil, errors.New("storage account creation returned no resource ID")
	}

	blobEndpoint := azurehelper.BlobEndpoint(account, cfg.StorageAccountName)

	if err := r.Services.Containers.CreateContainer(ctx, l, blobEndpoint, cfg.ContainerName); err != nil {
		return nil, err
	}

	identity, err := r.Services.Identities.CreateUserAssignedIdentity(ctx, l, cfg.ResourceGroupName, cfg.IdentityName, cfg.Location, cfg.Tags)
	if err != nil {
		return nil, err
	}

	if identity == nil || identity.Properties == nil || identity.Properties.PrincipalID == nil {
		return nil, errors.New("managed identity creation returned no principal ID")
	}

	if err := r.Services.RoleAssignments.AssignStorageBlobDataContributorRole(ctx, l, *account.ID, *identity.Properties.PrincipalID); err != nil {
		return nil, err
	}

	return buildResult(cfg, resourceGroup, account, identity, blobEndpoint), nil
}

func buildResult(cfg *BootstrapConfig, resourceGroup *armresources.ResourceGroup, account *armstorage.Account, identity *armmsi.Identity, blobEndpoint string) *Result {
	result := &Result{
		ResourceGroupName:   cfg.ResourceGroupName,
		StorageAccountName:  cfg.StorageAccountName,
		ContainerName:       cfg.ContainerName,
		IdentityName:        cfg.IdentityName,
		BlobEndpoint:        blobEndpoint,
		IdentityPrincipalID: *identity.Properties.PrincipalID,
	}

	if resourceGroup != nil && resourceGroup.ID != nil {
		result.ResourceGroupID = *resourceGroup.ID
	}

	result.StorageAccountID = *account.ID

	if identity.ID != nil {
		result.IdentityID = *identity.ID
	}

	if identity.Properties.ClientID != nil {
		result.IdentityClientID = *identity.Properties.ClientID
	}

	return result
}
