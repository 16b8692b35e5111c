package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a workspace file.
type fileRoot struct {
	Platforms []*platformBlock `hcl:"platform,block"`
}

// platformBlock represents a `platform` block. Attributes stay expressions
// until the platform's evaluation context is known.
type platformBlock struct {
	Name      string          `hcl:"name,label"`
	Manifests hcl.Expression  `hcl:"manifests,optional"`
	Trigger   hcl.Expression  `hcl:"trigger,optional"`
	Builders  []*builderBlock `hcl:"builder,block"`
}

// builderBlock represents an inline `builder` declaration.
type builderBlock struct {
	Name     string         `hcl:"name,label"`
	Produces hcl.Expression `hcl:"produces,optional"`
	Consumes hcl.Expression `hcl:"consumes,optional"`
}
