// Package config defines the format-agnostic worksheet model for the
// application, along with the Loader interface for reading worksheets from
// various sources.
//
// The `config.Model` is the single source of truth for the `evaluator` and
// `app` packages. Concrete implementations of the interface, such as for
// HCL, are provided in separate packages.
package config
