package mlink

import (
	"math"

	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// Stream is a typed protocol adapter over one host link. Not safe for
// concurrent use; the host serializes calls into an extension anyway.
type Stream struct {
	ld     *numlink.LibraryData
	link   numlink.Link
	enc    Encoding
	frames []*frame
}

// NewStream wraps an existing link. The encoding is fixed for the stream's
// lifetime.
func NewStream(ld *numlink.LibraryData, link numlink.Link, enc Encoding) *Stream {
	return &Stream{ld: ld, link: link, enc: enc}
}

// EvalStream wraps the host's evaluation channel.
func EvalStream(ld *numlink.LibraryData, enc Encoding) *Stream {
	return NewStream(ld, ld.EvalLink, enc)
}

// Link returns the wrapped link handle.
func (s *Stream) Link() numlink.Link { return s.link }

// Encoding returns the stream's fixed text encoding.
func (s *Stream) Encoding() Encoding { return s.enc }

// target is where writes currently go: the innermost open loopback link, or
// the wrapped link itself.
func (s *Stream) target() numlink.Link {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1].link
	}
	return s.link
}

// note records one completed expression for open-length accounting.
func (s *Stream) note() {
	if n := len(s.frames); n > 0 {
		s.frames[n-1].note()
	}
}

// PutInteger writes one machine integer.
func (s *Stream) PutInteger(v int64) error {
	if err := s.ld.Link.PutInteger(s.target(), v); err != nil {
		return errman.Named(errman.MLPutScalarError).WithDebug("integer: %v", err)
	}
	s.note()
	return nil
}

// PutReal writes one machine real.
func (s *Stream) PutReal(v float64) error {
	if err := s.ld.Link.PutReal(s.target(), v); err != nil {
		return errman.Named(errman.MLPutScalarError).WithDebug("real: %v", err)
	}
	s.note()
	return nil
}

// PutComplex writes Complex[re, im].
func (s *Stream) PutComplex(v complex128) error {
	l := s.target()
	api := s.ld.Link
	if err := api.PutFunction(l, "Complex", 2); err != nil {
		return errman.Named(errman.MLPutScalarError).WithDebug("complex head: %v", err)
	}
	if err := api.PutReal(l, real(v)); err != nil {
		return errman.Named(errman.MLPutScalarError).WithDebug("complex re: %v", err)
	}
	if err := api.PutReal(l, imag(v)); err != nil {
		return errman.Named(errman.MLPutScalarError).WithDebug("complex im: %v", err)
	}
	s.note()
	return nil
}

// PutBool writes the symbol True or False.
func (s *Stream) PutBool(v bool) error {
	name := "False"
	if v {
		name = "True"
	}
	if err := s.ld.Link.PutSymbol(s.target(), name); err != nil {
		return errman.Named(errman.MLPutScalarError).WithDebug("bool: %v", err)
	}
	s.note()
	return nil
}

// PutString writes one string in the stream's encoding.
func (s *Stream) PutString(v string) error {
	if err := s.putString(s.target(), v); err != nil {
		if _, ok := err.(*errman.Error); ok {
			return err
		}
		return errman.Named(errman.MLPutStringError).WithDebug("%v", err)
	}
	s.note()
	return nil
}

// PutSymbol writes one symbol.
func (s *Stream) PutSymbol(name string) error {
	if err := s.ld.Link.PutSymbol(s.target(), name); err != nil {
		return errman.Named(errman.MLPutSymbolError).WithDebug("%q: %v", name, err)
	}
	s.note()
	return nil
}

// PutFunction writes a function head with a declared argument count. The
// caller must follow with exactly nargs expressions.
func (s *Stream) PutFunction(head string, nargs int) error {
	if err := s.ld.Link.PutFunction(s.target(), head, nargs); err != nil {
		return errman.Named(errman.MLPutFunctionError).WithDebug("%s[%d]: %v", head, nargs, err)
	}
	if n := len(s.frames); n > 0 {
		s.frames[n-1].open(nargs)
	}
	return nil
}

// PutList writes a List head with a declared length.
func (s *Stream) PutList(n int) error {
	if err := s.PutFunction("List", n); err != nil {
		return errman.Named(errman.MLPutListError).WithDebug("%v", err)
	}
	return nil
}

// Put writes one value of any supported scalar or string type.
func (s *Stream) Put(v any) error {
	switch x := v.(type) {
	case bool:
		return s.PutBool(x)
	case int:
		return s.PutInteger(int64(x))
	case int8:
		return s.PutInteger(int64(x))
	case int16:
		return s.PutInteger(int64(x))
	case int32:
		return s.PutInteger(int64(x))
	case int64:
		return s.PutInteger(x)
	case uint8:
		return s.PutInteger(int64(x))
	case uint16:
		return s.PutInteger(int64(x))
	case uint32:
		return s.PutInteger(int64(x))
	case uint:
		if uint64(x) > math.MaxInt64 {
			return errman.Named(errman.MLPutScalarError).WithDebug("uint value %d overflows the machine integer", x)
		}
		return s.PutInteger(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return errman.Named(errman.MLPutScalarError).WithDebug("uint64 value %d overflows the machine integer", x)
		}
		return s.PutInteger(int64(x))
	case float32:
		return s.PutReal(float64(x))
	case float64:
		return s.PutReal(x)
	case complex64:
		return s.PutComplex(complex128(x))
	case complex128:
		return s.PutComplex(x)
	case string:
		return s.PutString(x)
	}
	return errman.Named(errman.MLPutScalarError).WithDebug("unsupported value type %T", v)
}

// GetInteger reads one machine integer.
func (s *Stream) GetInteger() (int64, error) {
	v, err := s.ld.Link.GetInteger(s.link)
	if err != nil {
		return 0, errman.Named(errman.MLGetScalarError).WithDebug("integer: %v", err)
	}
	return v, nil
}

// GetReal reads one machine real.
func (s *Stream) GetReal() (float64, error) {
	v, err := s.ld.Link.GetReal(s.link)
	if err != nil {
		return 0, errman.Named(errman.MLGetScalarError).WithDebug("real: %v", err)
	}
	return v, nil
}

// GetComplex reads Complex[re, im].
func (s *Stream) GetComplex() (complex128, error) {
	head, nargs, err := s.ld.Link.GetFunction(s.link)
	if err != nil || head != "Complex" || nargs != 2 {
		return 0, errman.Named(errman.MLGetScalarError).WithDebug("complex head %q[%d]: %v", head, nargs, err)
	}
	re, err := s.ld.Link.GetReal(s.link)
	if err != nil {
		return 0, errman.Named(errman.MLGetScalarError).WithDebug("complex re: %v", err)
	}
	im, err := s.ld.Link.GetReal(s.link)
	if err != nil {
		return 0, errman.Named(errman.MLGetScalarError).WithDebug("complex im: %v", err)
	}
	return complex(re, im), nil
}

// GetBool reads the symbol True or False. Any other symbol fails with
// MLWrongSymbolForBool.
func (s *Stream) GetBool() (bool, error) {
	name, err := s.ld.Link.GetSymbol(s.link)
	if err != nil {
		return false, errman.Named(errman.MLGetScalarError).WithDebug("bool: %v", err)
	}
	switch name {
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	return false, errman.Named(errman.MLWrongSymbolForBool).WithDebug("got %q", name)
}

// GetString reads one string in the stream's encoding.
func (s *Stream) GetString() (string, error) {
	v, err := s.getString(s.link)
	if err != nil {
		if _, ok := err.(*errman.Error); ok {
			return "", err
		}
		return "", errman.Named(errman.MLGetStringError).WithDebug("%v", err)
	}
	return v, nil
}

// GetSymbol reads one symbol.
func (s *Stream) GetSymbol() (string, error) {
	name, err := s.ld.Link.GetSymbol(s.link)
	if err != nil {
		return "", errman.Named(errman.MLGetSymbolError).WithDebug("%v", err)
	}
	return name, nil
}

// GetFunction reads a function head and its declared argument count.
func (s *Stream) GetFunction() (string, int, error) {
	head, nargs, err := s.ld.Link.GetFunction(s.link)
	if err != nil {
		return "", 0, errman.Named(errman.MLGetFunctionError).WithDebug("%v", err)
	}
	return head, nargs, nil
}

// GetList reads a List head and returns its length.
func (s *Stream) GetList() (int, error) {
	head, nargs, err := s.ld.Link.GetFunction(s.link)
	if err != nil || head != "List" {
		return 0, errman.Named(errman.MLGetListError).WithDebug("head %q: %v", head, err)
	}
	return nargs, nil
}

// TestHead reads a function head and checks it against the expected name and
// argument count.
func (s *Stream) TestHead(head string, nargs int) error {
	got, n, err := s.ld.Link.GetFunction(s.link)
	if err != nil || got != head || n != nargs {
		return errman.Named(errman.MLTestHeadError).WithDebug("want %s[%d], got %s[%d]: %v", head, nargs, got, n, err)
	}
	return nil
}

// NextType reports the class of the next readable element.
func (s *Stream) NextType() (numlink.TokenType, error) {
	t, err := s.ld.Link.GetType(s.link)
	if err != nil {
		return numlink.TokenError, errman.Named(errman.MLGetFunctionError).WithDebug("token class query: %v", err)
	}
	return t, nil
}

// NewPacket discards any packet currently buffered on the link.
func (s *Stream) NewPacket() error {
	if err := s.ld.Link.NewPacket(s.link); err != nil {
		return errman.Named(errman.MLPacketHandleError).WithDebug("%v", err)
	}
	return nil
}

// NextPacket reads the class of the next packet.
func (s *Stream) NextPacket() (numlink.PacketType, error) {
	pt, err := s.ld.Link.NextPacket(s.link)
	if err != nil {
		return numlink.PacketIllegal, errman.Named(errman.MLPacketHandleError).WithDebug("%v", err)
	}
	return pt, nil
}

// EndPacket commits the current packet.
func (s *Stream) EndPacket() error {
	if err := s.ld.Link.EndPacket(s.link); err != nil {
		return errman.Named(errman.MLFlowControlError).WithDebug("%v", err)
	}
	return nil
}

// Flush pushes buffered writes to the host.
func (s *Stream) Flush() error {
	if err := s.ld.Link.Flush(s.link); err != nil {
		return errman.Named(errman.MLFlowControlError).WithDebug("%v", err)
	}
	return nil
}

// Process hands the written expression to the host evaluator.
func (s *Stream) Process() error {
	if s.ld.ProcessEval == nil {
		return errman.Named(errman.MLFlowControlError).WithDebug("no evaluator on this link")
	}
	if err := s.ld.ProcessEval(s.link); err != nil {
		return errman.Named(errman.MLFlowControlError).WithDebug("%v", err)
	}
	return nil
}

// DrainReturnPacket discards a pending reply packet, if one is waiting.
func (s *Stream) DrainReturnPacket() error {
	pt, err := s.NextPacket()
	if err != nil {
		return err
	}
	if pt == numlink.PacketReturn {
		return s.NewPacket()
	}
	return nil
}
