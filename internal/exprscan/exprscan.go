// Package exprscan collects the variable references and function calls an
// HCL expression makes, without evaluating it.
package exprscan

import (
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., let.sigma_v
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// Scan is the result of scanning one expression.
type Scan struct {
	References []hcl.Traversal
	Functions  []*hclsyntax.FunctionCallExpr
}

// Expression walks expr and returns its unique variable traversals, sorted by
// key, and every function call in source order. Expressions that are not
// native HCL syntax report references only.
func Expression(expr hcl.Expression) Scan {
	var s Scan
	if expr == nil {
		return s
	}

	seen := make(map[string]hcl.Traversal)
	for _, tr := range expr.Variables() {
		seen[TraversalKey(tr)] = tr
	}
	for _, k := range slices.Sorted(maps.Keys(seen)) {
		s.References = append(s.References, seen[k])
	}

	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		_ = hclsyntax.VisitAll(syntaxExpr, func(n hclsyntax.Node) hcl.Diagnostics {
			if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
				s.Functions = append(s.Functions, call)
			}
			return nil
		})
	}
	return s
}

// FunctionNames returns the unique called function names, sorted.
func (s Scan) FunctionNames() []string {
	names := make([]string, 0, len(s.Functions))
	for _, call := range s.Functions {
		names = append(names, call.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
