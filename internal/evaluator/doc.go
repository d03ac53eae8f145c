// Package evaluator runs the `let` calculations of one worksheet against a
// sealed set of operator registries. Lets are evaluated in declaration
// order and each finished one is visible to later lets as `let.<name>`.
package evaluator
