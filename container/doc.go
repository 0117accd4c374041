// Package container wraps the host's raw resource handles with explicit
// passing modes so that extension code never frees a handle twice, never
// leaks one, and never frees a handle the host still owns.
//
// A wrapper pairs a handle with one of four passing modes:
//
//   - Automatic and Constant: the host owns the handle for the duration of
//     the call; dropping the wrapper releases nothing.
//   - Manual: this layer owns the handle and must free it exactly once,
//     unless ownership is handed back through Pass.
//   - Shared: the host reference-counts the handle; dropping disowns one
//     reference instead of freeing.
//
// Record lists (DataStore handles) cannot be Shared; adopting one in Shared
// mode fails with the DLSharedDataStore registry error.
//
// Clone always produces a Manual deep copy regardless of the source mode.
// Convert builds a wrapper of another mode: the same mode borrows or shares,
// any other mode deep-clones first. Wrappers are moved with Release, which
// leaves the source inert so a later Drop is a no-op.
//
// The typed layer (Tensor, NumericArray, Image) adds element-type-checked
// access on top of the generic wrappers. The check runs on first data
// access, not at construction, because the host cannot always report the
// element type without a round trip.
//
// Usage:
//
//	gt, err := container.AdoptTensor(ld, raw, container.Automatic)
//	if err != nil {
//		return err
//	}
//	defer gt.Drop()
//	view := container.TensorOf[float64](gt)
//	data, err := view.Data() // TensorTypeError if the handle holds integers
package container
