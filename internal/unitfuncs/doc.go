// Package unitfuncs exposes measures and tensors to HCL worksheets. It owns
// the cty encoding of both (objects with a `kind` attribute naming the
// quantity) and the function table worksheets call: constructors,
// conversion, registry-resolved arithmetic, tensor access and the
// linear-elastic helpers.
package unitfuncs
