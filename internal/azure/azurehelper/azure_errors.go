package azurehelper

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
)

// AzureResponseError carries the parts of an Azure API error response that are
// useful in diagnostics. Errors are never retried; the classification exists
// only to produce clearer messages.
type AzureResponseError struct {
	Message    string
	ErrorCode  string
	StatusCode int
}

func (e *AzureResponseError) Error() string {
	return fmt.Sprintf("Azure API error (StatusCode=%d, ErrorCode=%s): %s", e.StatusCode, e.ErrorCode, e.Message)
}

// ConvertAzureError extracts an AzureResponseError from the given error chain.
// Returns nil when the chain does not contain an azcore.ResponseError.
func ConvertAzureError(err error) *AzureResponseError {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return &AzureResponseError{
			StatusCode: respErr.StatusCode,
			ErrorCode:  respErr.ErrorCode,
			Message:    respErr.Error(),
		}
	}

	return nil
}

// IsNotFoundError checks if the error is a "not found" response from the Azure API.
func IsNotFoundError(err error) bool {
	azErr := ConvertAzureError(err)
	return azErr != nil && azErr.StatusCode == httpStatusNotFound
}

// IsConflictError checks if the error is a "conflict" response from the Azure API,
// such as a resource that already exists.
func IsConflictError(err error) bool {
	azErr := ConvertAzureError(err)
	return azErr != nil && azErr.StatusCode == httpStatusConflict
}

// IsPermissionError checks if the error is an authentication or authorization
// failure from the Azure API.
func IsPermissionError(err error) bool {
	azErr := ConvertAzureError(err)
	return azErr != nil && (azErr.StatusCode == httpStatusUnauthorized || azErr.StatusCode == httpStatusForbidden)
}
