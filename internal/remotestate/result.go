package remotestate

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Result records the resources created by a successful bootstrap run. It is only
// produced when every step succeeded; a failed run returns an error and no Result.
type Result struct {
	ResourceGroupName string
	ResourceGroupID   string

	StorageAccountName string
	StorageAccountID   string
	BlobEndpoint       string

	ContainerName string

	IdentityName        string
	IdentityID          string
	IdentityPrincipalID string
	IdentityClientID    string
}

// Summary renders the result as human-readable text for the console.
func (r *Result) Summary() string {
	var sb strings.Builder

	sb.WriteString("Bootstrap complete. Created resources:\n\n")
	fmt.Fprintf(&sb, "  Resource group:   %s\n", r.ResourceGroupName)
	fmt.Fprintf(&sb, "                    %s\n", r.ResourceGroupID)
	fmt.Fprintf(&sb, "  Storage account:  %s\n", r.StorageAccountName)
	fmt.Fprintf(&sb, "                    %s\n", r.StorageAccountID)
	fmt.Fprintf(&sb, "  Container:        %s\n", r.ContainerName)
	fmt.Fprintf(&sb, "  Managed identity: %s\n", r.IdentityName)
	fmt.Fprintf(&sb, "                    %s\n", r.IdentityID)
	fmt.Fprintf(&sb, "    Principal ID:   %s\n", r.IdentityPrincipalID)
	fmt.Fprintf(&sb, "    Client ID:      %s\n", r.IdentityClientID)

	return sb.String()
}

// BackendConfig renders the OpenTofu/Terraform backend block matching the
// created resources, ready to paste into a configuration file.
func (r *Result) BackendConfig() string {
	f := hclwrite.NewEmptyFile()
	backendBody := f.Body().AppendNewBlock("backend", []string{"azurerm"}).Body()

	backendBody.SetAttributeValue("resource_group_name", cty.StringVal(r.ResourceGroupName))
	backendBody.SetAttributeValue("storage_account_name", cty.StringVal(r.StorageAccountName))
	backendBody.SetAttributeValue("container_name", cty.StringVal(r.ContainerName))
	backendBody.SetAttributeValue("key", cty.StringVal("terraform.tfstate"))

	return string(f.Bytes())
}
