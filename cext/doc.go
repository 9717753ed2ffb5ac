// Package cext implements the call-site adapter layer that lets managed code
// invoke functions written against a C-extension-style ABI.
//
// This package contains:
//   - Calling conventions and the argument shapes each one expects
//   - Reference tracking for native wrappers, including tuple traversal
//   - Primitive materialization of leak-prone scalars
//   - The invocation adapter that crosses the native boundary, validates
//     results and bridges the caught-exception cell
//   - Call-site roots, one per convention, usable as ordinary callables
//   - A reflect-based transport and the native-side API surface
package cext
