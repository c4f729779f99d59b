// Package vm implements the embedding virtual machine that native extensions
// attach to.
//
// This package contains:
//   - NaN-boxed value representation
//   - The per-VM object registry (strings, hashes, exceptions, data cells)
//   - VTable-based method dispatch with class-side tables
//   - Exception raising through Send
//   - DataType, the checked boxing gateway for native Go values
package vm
