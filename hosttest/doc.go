// Package hosttest provides an in-memory double of the host ABI for tests.
//
// The double keeps a handle table per resource kind with per-handle call
// counters, so ownership properties (exactly one free or disown per owned
// handle, no double release) can be asserted directly. Links are token
// queues: every put appends a token, every get pops one, and loopback links
// behave exactly like regular ones, which makes wire-level comparisons a
// matter of comparing token slices.
//
//	h := hosttest.New()
//	ld := h.LibraryData()
//	l := h.CreateLink()
//	// ... exercise code under test ...
//	if st, _ := h.TensorStats(raw); st.Frees != 1 {
//	    t.Fatalf("expected exactly one free, got %d", st.Frees)
//	}
//
// Individual host calls can be made to fail with FailOp, using names like
// "tensor.clone" or "link.putstring".
package hosttest
