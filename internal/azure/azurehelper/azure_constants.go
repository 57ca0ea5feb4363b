// Package azurehelper wraps the Azure SDK clients used to provision remote state
// resources. Each client covers one resource type and exposes only the operations
// the bootstrap flow needs.
package azurehelper

import "net/http"

const (
	// HTTP status codes used for Azure API error classification
	httpStatusNotFound     = http.StatusNotFound
	httpStatusUnauthorized = http.StatusUnauthorized
	httpStatusForbidden    = http.StatusForbidden
	httpStatusConflict     = http.StatusConflict

	// defaultEndpointSuffix is the blob endpoint suffix for the Azure public cloud.
	defaultEndpointSuffix = "core.windows.net"

	// storageBlobDataContributorRoleID is the definition ID of the built-in
	// "Storage Blob Data Contributor" role, identical in every subscription.
	storageBlobDataContributorRoleID = "ba92f5b4-2d11-453d-a403-e96b0029c9fe"
)
