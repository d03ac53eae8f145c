// Package hcl provides the concrete HCL implementation of the worksheet
// Loader interface defined in the `config` package. It is responsible for
// file discovery, parsing, and HCL-to-model translation. `let` values are
// kept as unevaluated expressions.
package hcl
