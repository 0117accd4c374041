// Package numlink provides a safe, typed interop layer between Go extension
// code and a numeric-computing host environment that exposes a raw C-style ABI.
//
// The host hands out opaque handles for tensors, images, typed numeric buffers
// and heterogeneous record lists, plus a sequential link for exchanging
// structured expressions with its evaluator. This library makes those handles
// ownership-safe, element-typed and iterable, and converts every host-reported
// failure into a named, numbered error the host understands.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	numlink/        Root package with the host ABI surface (handle types, per-kind APIs, LibraryData)
//	├── container/  Ownership-aware wrappers over host resources, generic and element-typed
//	├── mlink/      Expression stream protocol over a host link (scalars, strings, heads, packets)
//	├── errman/     Process-wide error registry and the failure-shipping bridge
//	├── argman/     Call-boundary argument access and the integer return-code contract
//	├── hosttest/   In-memory host double with call counters, for tests
//	└── cmd/errcat/ Diagnostic tool printing the registered error catalog
//
// # Quick Start
//
// A library entry point receives arguments from the host, wraps them, and
// returns a result:
//
//	func Echo(ld *numlink.LibraryData, args []numlink.Argument, res *numlink.Argument) int {
//	    return argman.Run(ld, args, res, func(m *argman.Manager) error {
//	        na, err := m.NumericArray(0, container.Automatic)
//	        if err != nil {
//	            return err
//	        }
//	        out, err := na.Clone()
//	        if err != nil {
//	            return err
//	        }
//	        m.SetNumericArray(out)
//	        return nil
//	    })
//	}
//
// # Ownership
//
// Every container wrapper carries a passing mode fixed at construction:
// Automatic and Constant wrappers are views whose cleanup is a no-op, Manual
// wrappers free their handle exactly once on Drop, and Shared wrappers
// participate in the host's reference counting. See package container.
//
// # Thread Safety
//
// The host serializes calls into a loaded extension, so nothing here takes
// locks around host handles. The error registry is initialized lazily and is
// safe to read concurrently once registration has completed.
package numlink
