package mlink_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
	"github.com/numlink/numlink/hosttest"
	"github.com/numlink/numlink/mlink"
)

func newStream(enc mlink.Encoding) (*hosttest.Host, *mlink.Stream) {
	h := hosttest.New()
	ld := h.LibraryData()
	return h, mlink.NewStream(ld, h.CreateLink(), enc)
}

func TestScalarRoundTrip(t *testing.T) {
	_, s := newStream(mlink.Native)

	if err := s.PutInteger(-42); err != nil {
		t.Fatal(err)
	}
	if err := s.PutReal(3.5); err != nil {
		t.Fatal(err)
	}
	if err := s.PutComplex(complex(1, -2)); err != nil {
		t.Fatal(err)
	}
	if err := s.PutBool(true); err != nil {
		t.Fatal(err)
	}

	if v, err := s.GetInteger(); err != nil || v != -42 {
		t.Fatalf("GetInteger = %d, %v", v, err)
	}
	if v, err := s.GetReal(); err != nil || v != 3.5 {
		t.Fatalf("GetReal = %g, %v", v, err)
	}
	if v, err := s.GetComplex(); err != nil || v != complex(1, -2) {
		t.Fatalf("GetComplex = %v, %v", v, err)
	}
	if v, err := s.GetBool(); err != nil || !v {
		t.Fatalf("GetBool = %v, %v", v, err)
	}
}

func TestGetBoolRejectsOtherSymbols(t *testing.T) {
	_, s := newStream(mlink.Native)
	if err := s.PutSymbol("Maybe"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetBool(); !errors.Is(err, errman.Named(errman.MLWrongSymbolForBool)) {
		t.Fatalf("err = %v, want MLWrongSymbolForBool", err)
	}
}

func TestStringRoundTripPerEncoding(t *testing.T) {
	cases := []struct {
		enc     mlink.Encoding
		samples []string
	}{
		{mlink.Native, []string{"", "plain ascii", "zażółć gęślą jaźń", "數值"}},
		{mlink.Byte, []string{"", "plain ascii", "naïve £"}}, // Latin-1 only
		{mlink.UTF8, []string{"", "plain ascii", "zażółć gęślą jaźń", "a\U0001D4B3b"}},
		{mlink.UTF8Strict, []string{"", "plain ascii", "zażółć gęślą jaźń"}},
		{mlink.UTF16, []string{"", "plain ascii", "數值", "a\U0001D4B3b"}}, // surrogate pair
		{mlink.UCS2, []string{"", "plain ascii", "zażółć gęślą jaźń", "數值"}},
		{mlink.UTF32, []string{"", "plain ascii", "數值", "a\U0001D4B3b"}},
	}
	for _, tc := range cases {
		t.Run(tc.enc.String(), func(t *testing.T) {
			for _, want := range tc.samples {
				_, s := newStream(tc.enc)
				if err := s.PutString(want); err != nil {
					t.Fatalf("put %q: %v", want, err)
				}
				got, err := s.GetString()
				if err != nil {
					t.Fatalf("get %q: %v", want, err)
				}
				if got != want {
					t.Fatalf("round trip = %q, want %q", got, want)
				}
			}
		})
	}
}

func TestByteEncodingSubstitutes(t *testing.T) {
	_, s := newStream(mlink.Byte)
	if err := s.PutString("ażb"); err != nil { // ż is not Latin-1
		t.Fatal(err)
	}
	got, err := s.GetString()
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\x1ab" {
		t.Fatalf("got %q, want substitution character for the wide rune", got)
	}
}

func TestUTF8AsciiFastPath(t *testing.T) {
	h, s := newStream(mlink.UTF8)
	if err := s.PutString("all ascii here"); err != nil {
		t.Fatal(err)
	}
	if h.ByteStringPuts != 1 {
		t.Fatalf("byte string puts = %d, want the ASCII fast path taken", h.ByteStringPuts)
	}
	if err := s.PutString("zażółć"); err != nil {
		t.Fatal(err)
	}
	if h.ByteStringPuts != 1 {
		t.Fatalf("byte string puts = %d, non-ASCII input must not take the fast path", h.ByteStringPuts)
	}
}

func TestHostStringBuffersAlwaysReleased(t *testing.T) {
	for _, enc := range []mlink.Encoding{mlink.Native, mlink.Byte, mlink.UTF8, mlink.UTF16, mlink.UCS2, mlink.UTF32} {
		h, s := newStream(enc)
		if err := s.PutString("x"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.GetString(); err != nil {
			t.Fatal(err)
		}
		if h.StringReleases != 1 {
			t.Fatalf("%v: string releases = %d, want 1", enc, h.StringReleases)
		}
	}
}

func TestPutFailureSurfacesNamedError(t *testing.T) {
	h, s := newStream(mlink.Native)
	h.FailOp("link.putinteger")
	if err := s.PutInteger(1); !errors.Is(err, errman.Named(errman.MLPutScalarError)) {
		t.Fatalf("err = %v, want MLPutScalarError", err)
	}
	h.FailOp("link.putstring")
	if err := s.PutString("x"); !errors.Is(err, errman.Named(errman.MLPutStringError)) {
		t.Fatalf("err = %v, want MLPutStringError", err)
	}
	h.FailOp("link.putfunction")
	if err := s.PutFunction("List", 1); !errors.Is(err, errman.Named(errman.MLPutFunctionError)) {
		t.Fatalf("err = %v, want MLPutFunctionError", err)
	}
	h.FailOp("link.getsymbol")
	if _, err := s.GetSymbol(); !errors.Is(err, errman.Named(errman.MLGetSymbolError)) {
		t.Fatalf("err = %v, want MLGetSymbolError", err)
	}
}

func TestPutUnsignedIntegers(t *testing.T) {
	_, s := newStream(mlink.Native)

	if err := s.Put(uint(7)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(uint64(9)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []int64{7, 9} {
		if v, err := s.GetInteger(); err != nil || v != want {
			t.Fatalf("GetInteger = %d, %v, want %d", v, err, want)
		}
	}

	// Values the machine integer cannot hold are rejected, not truncated.
	err := s.Put(uint64(math.MaxUint64))
	if !errors.Is(err, errman.Named(errman.MLPutScalarError)) {
		t.Fatalf("err = %v, want MLPutScalarError", err)
	}
}

func TestNextTypeFailureUsesGetFamilyError(t *testing.T) {
	h, s := newStream(mlink.Native)
	h.FailOp("link.gettype")
	if _, err := s.NextType(); !errors.Is(err, errman.Named(errman.MLGetFunctionError)) {
		t.Fatalf("err = %v, want MLGetFunctionError", err)
	}
}

func TestOpenLengthMatchesFixedCount(t *testing.T) {
	for _, n := range []int{0, 1, 100} {
		h := hosttest.New()
		ld := h.LibraryData()

		open := mlink.NewStream(ld, h.CreateLink(), mlink.Native)
		if err := open.BeginExpr("List"); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			if err := open.Put(int64(i)); err != nil {
				t.Fatal(err)
			}
		}
		if err := open.EndExpr(); err != nil {
			t.Fatal(err)
		}

		fixed := mlink.NewStream(ld, h.CreateLink(), mlink.Native)
		if err := fixed.PutList(n); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			if err := fixed.Put(int64(i)); err != nil {
				t.Fatal(err)
			}
		}

		if !reflect.DeepEqual(h.Tokens(open.Link()), h.Tokens(fixed.Link())) {
			t.Fatalf("n=%d: open-length wire form differs from fixed-count", n)
		}
	}
}

func TestOpenLengthNesting(t *testing.T) {
	h, s := newStream(mlink.Native)

	if err := s.BeginExpr("f"); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(int64(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginExpr("g"); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(int64(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(int64(3)); err != nil {
		t.Fatal(err)
	}
	if err := s.EndExpr(); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(int64(4)); err != nil {
		t.Fatal(err)
	}
	if err := s.EndExpr(); err != nil {
		t.Fatal(err)
	}

	want := []hosttest.Token{
		{Kind: numlink.TokenFunction, Str: "f", Argc: 3},
		{Kind: numlink.TokenInteger, Int: 1},
		{Kind: numlink.TokenFunction, Str: "g", Argc: 2},
		{Kind: numlink.TokenInteger, Int: 2},
		{Kind: numlink.TokenInteger, Int: 3},
		{Kind: numlink.TokenInteger, Int: 4},
	}
	if got := h.Tokens(s.Link()); !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %+v\nwant %+v", got, want)
	}
}

func TestOpenLengthCountsFixedHeadsAsOne(t *testing.T) {
	h, s := newStream(mlink.Native)

	if err := s.BeginExpr("Association"); err != nil {
		t.Fatal(err)
	}
	// A fixed-count Rule inside the open scope is a single argument.
	if err := s.PutFunction("Rule", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("key"); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(int64(9)); err != nil {
		t.Fatal(err)
	}
	if err := s.EndExpr(); err != nil {
		t.Fatal(err)
	}

	toks := h.Tokens(s.Link())
	if len(toks) == 0 || toks[0].Argc != 1 {
		t.Fatalf("Association argc = %+v, want 1", toks)
	}
}

func TestUnmatchedEndExprFails(t *testing.T) {
	_, s := newStream(mlink.Native)
	if err := s.EndExpr(); !errors.Is(err, errman.Named(errman.MLLoopbackStackSizeError)) {
		t.Fatalf("err = %v, want MLLoopbackStackSizeError", err)
	}
}

func TestBeginExprLoopbackFailure(t *testing.T) {
	h, s := newStream(mlink.Native)
	h.FailOp("link.newloopback")
	if err := s.BeginExpr("List"); !errors.Is(err, errman.Named(errman.MLCreateLoopbackError)) {
		t.Fatalf("err = %v, want MLCreateLoopbackError", err)
	}
}

func TestGetListChecksHead(t *testing.T) {
	_, s := newStream(mlink.Native)
	if err := s.PutFunction("Rule", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetList(); !errors.Is(err, errman.Named(errman.MLGetListError)) {
		t.Fatalf("err = %v, want MLGetListError", err)
	}
}

func TestTestHead(t *testing.T) {
	_, s := newStream(mlink.Native)
	if err := s.PutFunction("List", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.TestHead("List", 3); !errors.Is(err, errman.Named(errman.MLTestHeadError)) {
		t.Fatalf("err = %v, want MLTestHeadError", err)
	}
}
