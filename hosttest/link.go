package hosttest

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/numlink/numlink"
)

// Token is one element queued on a test link. Function tokens carry the head
// in Str and the argument count in Argc; their arguments follow as separate
// tokens.
type Token struct {
	Kind numlink.TokenType
	Int  int64
	Real float64
	Str  string
	Argc int
}

type linkRec struct {
	queue  []Token
	packet numlink.PacketType
	closed bool
}

// CreateLink allocates a fresh link handle with an empty queue.
func (h *Host) CreateLink() numlink.Link {
	l := numlink.Link(h.handle())
	h.links[l] = &linkRec{}
	return l
}

// Tokens returns a copy of everything currently queued on a link.
func (h *Host) Tokens(l numlink.Link) []Token {
	if r, ok := h.links[l]; ok {
		return append([]Token(nil), r.queue...)
	}
	return nil
}

func (h *Host) link(l numlink.Link) *linkRec {
	r := h.links[l]
	if r == nil || r.closed {
		return nil
	}
	return r
}

// processEval backs LibraryData.ProcessEval. It consumes the whole queue as
// one evaluation request and stages the evaluator's reply: a return packet
// holding the symbol Null.
func (h *Host) processEval(l numlink.Link) error {
	if err := h.failing("link.process"); err != nil {
		return err
	}
	r := h.link(l)
	if r == nil {
		return errBadHandle
	}
	h.Evaluations = append(h.Evaluations, r.queue)
	r.queue = []Token{{Kind: numlink.TokenSymbol, Str: "Null"}}
	r.packet = numlink.PacketReturn
	return nil
}

type linkHost struct{ h *Host }

func (a *linkHost) NewLoopback() (numlink.Link, error) {
	if err := a.h.failing("link.newloopback"); err != nil {
		return 0, err
	}
	return a.h.CreateLink(), nil
}

func (a *linkHost) Close(l numlink.Link) {
	if r := a.h.link(l); r != nil {
		r.closed = true
	}
}

func (a *linkHost) put(l numlink.Link, op string, t Token) error {
	if err := a.h.failing(op); err != nil {
		return err
	}
	r := a.h.link(l)
	if r == nil {
		return errBadHandle
	}
	r.queue = append(r.queue, t)
	return nil
}

func (a *linkHost) PutInteger(l numlink.Link, v int64) error {
	return a.put(l, "link.putinteger", Token{Kind: numlink.TokenInteger, Int: v})
}

func (a *linkHost) PutReal(l numlink.Link, v float64) error {
	return a.put(l, "link.putreal", Token{Kind: numlink.TokenReal, Real: v})
}

func (a *linkHost) PutSymbol(l numlink.Link, s string) error {
	return a.put(l, "link.putsymbol", Token{Kind: numlink.TokenSymbol, Str: s})
}

func (a *linkHost) PutFunction(l numlink.Link, head string, nargs int) error {
	return a.put(l, "link.putfunction", Token{Kind: numlink.TokenFunction, Str: head, Argc: nargs})
}

// Strings are stored decoded: the link holds abstract characters, so a value
// put in one encoding can be read back in another, like on a real link.

func (a *linkHost) PutString(l numlink.Link, s string) error {
	return a.put(l, "link.putstring", Token{Kind: numlink.TokenString, Str: s})
}

func (a *linkHost) PutByteString(l numlink.Link, b []byte) error {
	a.h.ByteStringPuts++
	rs := make([]rune, len(b))
	for i, c := range b {
		rs[i] = rune(c)
	}
	return a.put(l, "link.putbytestring", Token{Kind: numlink.TokenString, Str: string(rs)})
}

func (a *linkHost) PutUTF8String(l numlink.Link, b []byte) error {
	if !utf8.Valid(b) {
		return errWrongToken
	}
	return a.put(l, "link.pututf8string", Token{Kind: numlink.TokenString, Str: string(b)})
}

func (a *linkHost) PutUTF16String(l numlink.Link, u []uint16) error {
	return a.put(l, "link.pututf16string", Token{Kind: numlink.TokenString, Str: string(utf16.Decode(u))})
}

func (a *linkHost) PutUCS2String(l numlink.Link, u []uint16) error {
	rs := make([]rune, len(u))
	for i, c := range u {
		rs[i] = rune(c)
	}
	return a.put(l, "link.putucs2string", Token{Kind: numlink.TokenString, Str: string(rs)})
}

func (a *linkHost) PutUTF32String(l numlink.Link, u []uint32) error {
	rs := make([]rune, len(u))
	for i, c := range u {
		rs[i] = rune(c)
	}
	return a.put(l, "link.pututf32string", Token{Kind: numlink.TokenString, Str: string(rs)})
}

func (a *linkHost) pop(l numlink.Link, op string, kind numlink.TokenType) (Token, error) {
	if err := a.h.failing(op); err != nil {
		return Token{}, err
	}
	r := a.h.link(l)
	if r == nil {
		return Token{}, errBadHandle
	}
	if len(r.queue) == 0 {
		return Token{}, errEmptyLink
	}
	t := r.queue[0]
	if t.Kind != kind {
		return Token{}, errWrongToken
	}
	r.queue = r.queue[1:]
	return t, nil
}

func (a *linkHost) GetInteger(l numlink.Link) (int64, error) {
	t, err := a.pop(l, "link.getinteger", numlink.TokenInteger)
	return t.Int, err
}

func (a *linkHost) GetReal(l numlink.Link) (float64, error) {
	t, err := a.pop(l, "link.getreal", numlink.TokenReal)
	return t.Real, err
}

func (a *linkHost) GetSymbol(l numlink.Link) (string, error) {
	t, err := a.pop(l, "link.getsymbol", numlink.TokenSymbol)
	return t.Str, err
}

func (a *linkHost) GetFunction(l numlink.Link) (string, int, error) {
	t, err := a.pop(l, "link.getfunction", numlink.TokenFunction)
	return t.Str, t.Argc, err
}

func (a *linkHost) GetString(l numlink.Link) (string, error) {
	t, err := a.pop(l, "link.getstring", numlink.TokenString)
	return t.Str, err
}

func (a *linkHost) GetByteString(l numlink.Link, substitute byte) ([]byte, error) {
	t, err := a.pop(l, "link.getbytestring", numlink.TokenString)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(t.Str))
	for _, r := range t.Str {
		if r > 0xFF {
			out = append(out, substitute)
		} else {
			out = append(out, byte(r))
		}
	}
	return out, nil
}

func (a *linkHost) GetUTF8String(l numlink.Link) ([]byte, error) {
	t, err := a.pop(l, "link.getutf8string", numlink.TokenString)
	if err != nil {
		return nil, err
	}
	return []byte(t.Str), nil
}

func (a *linkHost) GetUTF16String(l numlink.Link) ([]uint16, error) {
	t, err := a.pop(l, "link.getutf16string", numlink.TokenString)
	if err != nil {
		return nil, err
	}
	return utf16.Encode([]rune(t.Str)), nil
}

func (a *linkHost) GetUCS2String(l numlink.Link) ([]uint16, error) {
	t, err := a.pop(l, "link.getucs2string", numlink.TokenString)
	if err != nil {
		return nil, err
	}
	rs := []rune(t.Str)
	out := make([]uint16, len(rs))
	for i, r := range rs {
		if r > 0xFFFF {
			out[i] = 26
		} else {
			out[i] = uint16(r)
		}
	}
	return out, nil
}

func (a *linkHost) GetUTF32String(l numlink.Link) ([]uint32, error) {
	t, err := a.pop(l, "link.getutf32string", numlink.TokenString)
	if err != nil {
		return nil, err
	}
	rs := []rune(t.Str)
	out := make([]uint32, len(rs))
	for i, r := range rs {
		out[i] = uint32(r)
	}
	return out, nil
}

func (a *linkHost) ReleaseString(l numlink.Link, buf any) {
	a.h.StringReleases++
}

func (a *linkHost) GetType(l numlink.Link) (numlink.TokenType, error) {
	if err := a.h.failing("link.gettype"); err != nil {
		return numlink.TokenError, err
	}
	r := a.h.link(l)
	if r == nil {
		return numlink.TokenError, errBadHandle
	}
	if len(r.queue) == 0 {
		return numlink.TokenError, errEmptyLink
	}
	return r.queue[0].Kind, nil
}

// TransferExpression pops one complete expression (a function token and all
// of its arguments, recursively) off src and appends it to dst.
func (a *linkHost) TransferExpression(dst, src numlink.Link) error {
	if err := a.h.failing("link.transfer"); err != nil {
		return err
	}
	sr, dr := a.h.link(src), a.h.link(dst)
	if sr == nil || dr == nil {
		return errBadHandle
	}
	n, err := exprLen(sr.queue)
	if err != nil {
		return err
	}
	dr.queue = append(dr.queue, sr.queue[:n]...)
	sr.queue = sr.queue[n:]
	return nil
}

// exprLen returns how many leading tokens make up one whole expression.
func exprLen(q []Token) (int, error) {
	if len(q) == 0 {
		return 0, errEmptyLink
	}
	n := 1
	for i := 0; i < q[0].Argc; i++ {
		m, err := exprLen(q[n:])
		if err != nil {
			return 0, err
		}
		n += m
	}
	if n > len(q) {
		return 0, errEmptyLink
	}
	return n, nil
}

func (a *linkHost) NewPacket(l numlink.Link) error {
	if err := a.h.failing("link.newpacket"); err != nil {
		return err
	}
	r := a.h.link(l)
	if r == nil {
		return errBadHandle
	}
	r.queue = nil
	r.packet = numlink.PacketIllegal
	return nil
}

func (a *linkHost) NextPacket(l numlink.Link) (numlink.PacketType, error) {
	if err := a.h.failing("link.nextpacket"); err != nil {
		return numlink.PacketIllegal, err
	}
	r := a.h.link(l)
	if r == nil {
		return numlink.PacketIllegal, errBadHandle
	}
	return r.packet, nil
}

func (a *linkHost) EndPacket(l numlink.Link) error {
	if err := a.h.failing("link.endpacket"); err != nil {
		return err
	}
	if a.h.link(l) == nil {
		return errBadHandle
	}
	return nil
}

func (a *linkHost) Flush(l numlink.Link) error {
	if err := a.h.failing("link.flush"); err != nil {
		return err
	}
	if a.h.link(l) == nil {
		return errBadHandle
	}
	return nil
}
