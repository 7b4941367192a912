// Package schema declares the HCL structure of definition files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ExtensionBlock is a tagged configuration block. Its `type` attribute
// selects the registered variant that parses the remaining body.
type ExtensionBlock struct {
	Type string   `hcl:"type"`
	Body hcl.Body `hcl:",remain"`
}

// DefinitionFile is the top-level structure of one definition file.
//
// Option structures (default_options, tasks) are kept as unevaluated
// expressions because their flattening is order-sensitive; see the
// options package.
type DefinitionFile struct {
	Name           string          `hcl:"name,optional"`
	World          string          `hcl:"world"`
	Dest           string          `hcl:"dest"`
	DefaultOptions hcl.Expression  `hcl:"default_options,optional"`
	Tasks          hcl.Expression  `hcl:"tasks,optional"`
	Spreadsheet    *ExtensionBlock `hcl:"spreadsheet,block"`
	Remote         *ExtensionBlock `hcl:"remote,block"`
	Webhook        *ExtensionBlock `hcl:"webhook,block"`
}
