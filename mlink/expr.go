package mlink

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// frame is one open BeginExpr scope: a loopback link accumulating arguments
// until the count is known.
type frame struct {
	link numlink.Link
	head string
	// argc counts completed top-level expressions written into this scope.
	argc int
	// pending holds the remaining-argument counts of fixed-count function
	// heads still open inside the scope, innermost last. While non-empty,
	// completed expressions belong to those heads, not to argc.
	pending []int
}

// note records one completed expression, closing any fixed-count heads it
// completes on the way out.
func (f *frame) note() {
	for {
		if len(f.pending) == 0 {
			f.argc++
			return
		}
		last := len(f.pending) - 1
		f.pending[last]--
		if f.pending[last] > 0 {
			return
		}
		f.pending = f.pending[:last]
	}
}

// open records a fixed-count function head written into this scope.
func (f *frame) open(nargs int) {
	if nargs == 0 {
		f.note()
		return
	}
	f.pending = append(f.pending, nargs)
}

// BeginExpr starts an open-length expression with the given head. Subsequent
// writes accumulate on a fresh loopback link until EndExpr.
func (s *Stream) BeginExpr(head string) error {
	l, err := s.ld.Link.NewLoopback()
	if err != nil {
		return errman.Named(errman.MLCreateLoopbackError).WithDebug("%v", err)
	}
	s.frames = append(s.frames, &frame{link: l, head: head})
	return nil
}

// EndExpr closes the innermost open-length expression: it writes the head
// with the now-known argument count to the enclosing target, replays every
// accumulated expression behind it, and destroys the loopback link. With no
// matching BeginExpr it fails with MLLoopbackStackSizeError.
func (s *Stream) EndExpr() error {
	n := len(s.frames)
	if n == 0 {
		return errman.Named(errman.MLLoopbackStackSizeError)
	}
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	defer s.ld.Link.Close(f.link)

	dst := s.target()
	if err := s.ld.Link.PutFunction(dst, f.head, f.argc); err != nil {
		return errman.Named(errman.MLPutFunctionError).WithDebug("%s[%d]: %v", f.head, f.argc, err)
	}
	for i := 0; i < f.argc; i++ {
		if err := s.ld.Link.TransferExpression(dst, f.link); err != nil {
			return errman.Named(errman.MLTransferToLoopbackError).WithDebug("argument %d of %s: %v", i, f.head, err)
		}
	}
	// The whole replayed expression is one expression to the next scope up.
	s.note()
	return nil
}
