package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Worksheet Structures ---

// Block type names accepted at the top level of a worksheet.
const (
	RuleBlock = "rule"
	LetBlock  = "let"
)

// Worksheet describes the top level of a worksheet file. Each block carries
// one label: the operator for `rule`, the binding name for `let`.
var Worksheet = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: RuleBlock, LabelNames: []string{"operator"}},
		{Type: LetBlock, LabelNames: []string{"name"}},
	},
}

// Rule represents the body of a `rule` block. Quantities are named by their
// snake_case name ("specific_weight").
type Rule struct {
	Left      string `hcl:"left"`
	Right     string `hcl:"right"`
	Result    string `hcl:"result"`
	Symmetric *bool  `hcl:"symmetric,optional"`
}

// Let represents the body of a `let` block. Value stays an expression
// because it can only be evaluated once the registries are built.
type Let struct {
	Description string         `hcl:"description,optional"`
	Value       hcl.Expression `hcl:"value"`
	Unit        string         `hcl:"unit,optional"`
}
