// Package mlink implements the expression stream protocol over a host link.
//
// A Stream wraps one link handle with a text encoding fixed at construction.
// Writes and reads are one host call each; every host failure surfaces as a
// named registry error (MLPutScalarError, MLGetStringError, ...) so the call
// boundary can map it to the host's integer contract.
//
// The wire format declares a function's argument count before its arguments.
// When the count is not known up front, BeginExpr redirects writes to a
// temporary loopback link and EndExpr replays the accumulated arguments
// behind the now-known count:
//
//	s.BeginExpr("List")
//	for _, v := range values {
//		s.Put(v)
//	}
//	s.EndExpr()
//
// BeginExpr/EndExpr pairs nest; an unmatched EndExpr fails with
// MLLoopbackStackSizeError.
//
// String buffers obtained from the host are released before the converted
// Go value is returned; callers never see a host allocation.
package mlink
