package remotestate_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/internal/remotestate"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(fake *fakeAzure) (*remotestate.Runner, *options.Options) {
	runner := remotestate.NewRunner(fake.services())
	runner.Preflight = fakePreflight()
	runner.Confirm = acceptPrompt
	runner.PromptYesNo = acceptPrompt

	opts := options.NewForTest(new(bytes.Buffer), new(bytes.Buffer))

	return runner, opts
}

func acceptPrompt(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
	return true, nil
}

func declinePrompt(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
	return false, nil
}

func TestBootstrapSuccess(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "tfstate-rg", result.ResourceGroupName)
	assert.Equal(t, "tfstate1234", result.StorageAccountName)
	assert.Equal(t, "tfstate-identity", result.IdentityName)
	assert.NotEmpty(t, result.ResourceGroupID)
	assert.NotEmpty(t, result.StorageAccountID)
	assert.NotEmpty(t, result.IdentityID)
	assert.NotEmpty(t, result.IdentityPrincipalID)
	assert.Equal(t, "tfstate", result.ContainerName)
	assert.Contains(t, result.BlobEndpoint, "tfstate1234")

	assert.Equal(t, []string{
		"GetSubscriptionDisplayName",
		"ResourceGroupExists",
		"CreateResourceGroup",
		"CheckNameAvailability",
		"CreateStorageAccount",
		"CreateContainer",
		"CreateUserAssignedIdentity",
		"AssignStorageBlobDataContributorRole",
	}, fake.calls)

	assert.Equal(t, fake.gotScope, result.StorageAccountID)
	assert.Equal(t, fake.gotPrincipalID, result.IdentityPrincipalID)
	assert.Contains(t, fake.gotBlobEndpoint, "tfstate1234")
}

func TestBootstrapAbortsWhenResourceGroupExists(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	fake.rgExists = true
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	var existsErr remotestate.ResourceGroupAlreadyExistsError

	require.ErrorAs(t, err, &existsErr)
	assert.Equal(t, "tfstate-rg", existsErr.Name)

	assert.NotContains(t, fake.calls, "CreateResourceGroup")
	assert.NotContains(t, fake.calls, "CreateStorageAccount")
}

func TestBootstrapExistenceCheckFailureCreatesNothing(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	fake.rgExistsErr = errors.New("resource provider timeout")
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "resource provider timeout")
	assert.NotContains(t, fake.calls, "CreateResourceGroup")
}

func TestBootstrapAbortsWhenStorageAccountNameUnavailable(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	fake.nameAvailable = false
	fake.unavailableReason = "The storage account named tfstate1234 is already taken."
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	var unavailableErr remotestate.StorageAccountNameUnavailableError

	require.ErrorAs(t, err, &unavailableErr)
	assert.Equal(t, "tfstate1234", unavailableErr.Name)
	assert.Contains(t, err.Error(), "already taken")

	// The resource group was already created by the time the name check runs.
	// Nothing is rolled back.
	assert.Contains(t, fake.calls, "CreateResourceGroup")
	assert.NotContains(t, fake.calls, "CreateStorageAccount")
	assert.NotContains(t, fake.calls, "DeleteResourceGroup")
}

func TestBootstrapContainerFailureLeavesResourcesInPlace(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	fake.createContainerErr = errors.New("container creation blew up")
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	assert.Contains(t, fake.calls, "CreateStorageAccount")
	assert.Contains(t, fake.calls, "CreateContainer")
	assert.NotContains(t, fake.calls, "CreateUserAssignedIdentity")
	assert.NotContains(t, fake.calls, "AssignStorageBlobDataContributorRole")
	assert.NotContains(t, fake.calls, "DeleteResourceGroup")
}

func TestBootstrapRoleAssignmentFailureReturnsNoResult(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	fake.assignRoleErr = errors.New("authorization service unavailable")
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "authorization service unavailable")
	assert.NotContains(t, fake.calls, "DeleteResourceGroup")
}

func TestBootstrapAppliesTagsToEveryResource(t *testing.T) {
	t.Parallel()

	tags := map[string]string{
		"env":  "prod",
		"team": "platform",
	}

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)

	cfg := validConfig()
	cfg.Tags = tags

	result, err := runner.Run(t.Context(), opts.Logger, opts, cfg)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, tags, fake.rgTags)
	assert.Equal(t, tags, fake.saTags)
	assert.Equal(t, tags, fake.identityTags)
}

func TestBootstrapWithoutTags(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Empty(t, fake.rgTags)
	assert.Empty(t, fake.saTags)
	assert.Empty(t, fake.identityTags)
}

func TestBootstrapDeclinedConfirmationCreatesNothing(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)
	runner.Confirm = declinePrompt

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	var abortedErr remotestate.BootstrapAbortedError

	require.ErrorAs(t, err, &abortedErr)

	// Only the subscription lookup for the confirmation prompt ran.
	assert.Equal(t, []string{"GetSubscriptionDisplayName"}, fake.calls)
}

func TestBootstrapConfirmationShowsSessionDetails(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)

	var capturedPrompt string

	runner.Confirm = func(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
		capturedPrompt = prompt
		return true, nil
	}

	_, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.NoError(t, err)

	assert.Contains(t, capturedPrompt, "dev@example.com")
	assert.Contains(t, capturedPrompt, "example.com")
	// The prompt echoes the subscription name reported by the CLI profile.
	assert.Contains(t, capturedPrompt, "CLI Profile Subscription")
	assert.Contains(t, capturedPrompt, "tfstate-rg")
	assert.Contains(t, capturedPrompt, "tfstate1234")
	assert.Contains(t, capturedPrompt, "eastus")
}

func TestBootstrapMissingCLIAbortsBeforeConfirmation(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)
	runner.Preflight = &remotestate.Preflight{
		LookPath:   func(string) (string, error) { return "", errors.New("not found") },
		RunCommand: fakeAzCLI,
	}

	confirmCalled := false
	runner.Confirm = func(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
		confirmCalled = true
		return true, nil
	}

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	var notFoundErr remotestate.AzureCLINotFoundError

	require.ErrorAs(t, err, &notFoundErr)
	assert.False(t, confirmCalled)
	assert.Empty(t, fake.calls)
}

func TestBootstrapNotLoggedInAbortsBeforeConfirmation(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)
	runner.Preflight = &remotestate.Preflight{
		LookPath: func(string) (string, error) { return "/usr/bin/az", nil },
		RunCommand: func(ctx context.Context, l log.Logger, command string, args ...string) (string, error) {
			if args[0] == "version" {
				return `{"azure-cli": "2.75.0"}`, nil
			}

			return "", errors.New("az account show failed: Please run 'az login'")
		},
	}

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	var notLoggedInErr remotestate.NotLoggedInError

	require.ErrorAs(t, err, &notLoggedInErr)
	assert.Empty(t, fake.calls)
}

func TestBootstrapCredentialFailureAbortsBeforeConfirmation(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	fake.subscriptionErr = errors.New("DefaultAzureCredential: no credentials available")
	runner, opts := newTestRunner(fake)

	confirmCalled := false
	runner.Confirm = func(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
		confirmCalled = true
		return true, nil
	}

	result, err := runner.Run(t.Context(), opts.Logger, opts, validConfig())
	require.Error(t, err)
	assert.Nil(t, result)

	var notLoggedInErr remotestate.NotLoggedInError

	require.ErrorAs(t, err, &notLoggedInErr)
	assert.False(t, confirmCalled)
	assert.Equal(t, []string{"GetSubscriptionDisplayName"}, fake.calls)
}

func TestBootstrapInvalidConfigFailsFast(t *testing.T) {
	t.Parallel()

	fake := newFakeAzure()
	runner, opts := newTestRunner(fake)

	lookPathCalled := false
	runner.Preflight = &remotestate.Preflight{
		LookPath: func(string) (string, error) {
			lookPathCalled = true
			return "/usr/bin/az", nil
		},
		RunCommand: fakeAzCLI,
	}

	cfg := validConfig()
	cfg.StorageAccountName = "Has-Uppercase-And-Hyphens"

	result, err := runner.Run(t.Context(), opts.Logger, opts, cfg)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, lookPathCalled)
	assert.Empty(t, fake.calls)
}
