package errman_test

import (
	"errors"
	"testing"

	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
	"github.com/numlink/numlink/hosttest"
	"github.com/numlink/numlink/mlink"
)

func TestBuiltinIDs(t *testing.T) {
	r := errman.NewRegistry()

	v, err := r.Find(errman.VersionError)
	if err != nil {
		t.Fatal(err)
	}
	if v.ID() != 7 {
		t.Fatalf("VersionError id = %d, want 7", v.ID())
	}

	f, err := r.Find(errman.FunctionError)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID() != 6 {
		t.Fatalf("FunctionError id = %d, want 6", f.ID())
	}

	// Ids descend with no gaps across the whole catalog.
	prev := 8
	for _, e := range r.Entries() {
		if e.ID() != prev-1 {
			t.Fatalf("%s id = %d, want %d", e.Name(), e.ID(), prev-1)
		}
		prev = e.ID()
	}

	a, err := r.Find(errman.Aborted)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID() != 8-r.Len() {
		t.Fatalf("Aborted id = %d, want %d", a.ID(), 8-r.Len())
	}
}

func TestRegisterAssignsDescendingIDs(t *testing.T) {
	r := errman.NewRegistry()
	first := 7 - r.Len() // one less than the lowest built-in id

	err := r.Register(
		errman.ErrorData{Name: "AError", Message: "a"},
		errman.ErrorData{Name: "BError", Message: "b"},
		errman.ErrorData{Name: "CError", Message: "c"},
	)
	if err != nil {
		t.Fatal(err)
	}
	for i, name := range []string{"AError", "BError", "CError"} {
		e, err := r.Find(name)
		if err != nil {
			t.Fatal(err)
		}
		if e.ID() != first-i {
			t.Fatalf("%s id = %d, want %d", name, e.ID(), first-i)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	r := errman.NewRegistry()
	if err := r.Register(errman.ErrorData{Name: "DupError", Message: "m"}); err != nil {
		t.Fatal(err)
	}
	e, _ := r.Find("DupError")
	id := e.ID()

	// Same name, same template: a no-op, id unchanged.
	if err := r.Register(errman.ErrorData{Name: "DupError", Message: "m"}); err != nil {
		t.Fatalf("idempotent re-register failed: %v", err)
	}
	e, _ = r.Find("DupError")
	if e.ID() != id {
		t.Fatalf("id changed on re-register: %d -> %d", id, e.ID())
	}

	// Same name, different template: rejected, no id consumed.
	err := r.Register(errman.ErrorData{Name: "DupError", Message: "other"})
	if !errors.Is(err, errman.Named(errman.CreateNameError)) {
		t.Fatalf("err = %v, want ErrorManagerCreateNameError", err)
	}
	if err := r.Register(errman.ErrorData{Name: "AfterError", Message: "x"}); err != nil {
		t.Fatal(err)
	}
	after, _ := r.Find("AfterError")
	if after.ID() != id-1 {
		t.Fatalf("AfterError id = %d, want %d (failed registration must not burn an id)", after.ID(), id-1)
	}
}

func TestFindFailures(t *testing.T) {
	r := errman.NewRegistry()
	if _, err := r.Find("NoSuchError"); !errors.Is(err, errman.Named(errman.ThrowNameError)) {
		t.Fatalf("err = %v, want ErrorManagerThrowNameError", err)
	}
	if _, err := r.FindByID(12345); !errors.Is(err, errman.Named(errman.ThrowIdError)) {
		t.Fatalf("err = %v, want ErrorManagerThrowIdError", err)
	}
}

func TestNoSourceErrorEndToEnd(t *testing.T) {
	r := errman.NewRegistry()
	wantID := 7 - r.Len()
	msg := "Requested data source does not exist."

	if err := r.Register(errman.ErrorData{Name: "NoSourceError", Message: msg}); err != nil {
		t.Fatal(err)
	}

	h := hosttest.New()
	ld := h.LibraryData()
	s := mlink.EvalStream(ld, mlink.Native)

	err := r.Throw(s, "NoSourceError")
	var e *errman.Error
	if !errors.As(err, &e) {
		t.Fatalf("Throw returned %T", err)
	}
	if e.ID() != wantID || e.Message() != msg {
		t.Fatalf("thrown {id %d, msg %q}, want {%d, %q}", e.ID(), e.Message(), wantID, msg)
	}

	// The same entry is reachable through the id-lookup path.
	byID, err := r.FindByID(wantID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.Name() != "NoSourceError" || byID.Message() != msg {
		t.Fatalf("FindByID = %s %q", byID.Name(), byID.Message())
	}
}

func TestThrowWireSequence(t *testing.T) {
	r := errman.NewRegistry()
	h := hosttest.New()
	ld := h.LibraryData()
	s := mlink.EvalStream(ld, mlink.Native)

	err := r.Throw(s, errman.RankError, "extra", int64(3))
	if !errors.Is(err, errman.Named(errman.RankError)) {
		t.Fatalf("Throw returned %v", err)
	}

	if len(h.Evaluations) != 1 {
		t.Fatalf("evaluations = %d, want 1", len(h.Evaluations))
	}
	want := []hosttest.Token{
		{Kind: numlink.TokenFunction, Str: "EvaluatePacket", Argc: 1},
		{Kind: numlink.TokenFunction, Str: "Set", Argc: 2},
		{Kind: numlink.TokenSymbol, Str: "NumLink`$LastFailureParameters"},
		{Kind: numlink.TokenFunction, Str: "List", Argc: 2},
		{Kind: numlink.TokenString, Str: "extra"},
		{Kind: numlink.TokenInteger, Int: 3},
	}
	got := h.Evaluations[0]
	if len(got) != len(want) {
		t.Fatalf("evaluation tokens = %+v\nwant %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// The reply packet was drained: nothing left queued on the eval link.
	if toks := h.Tokens(ld.EvalLink); len(toks) != 0 {
		t.Fatalf("eval link still holds %+v", toks)
	}
}

func TestThrowUnknownNameWritesNothing(t *testing.T) {
	r := errman.NewRegistry()
	h := hosttest.New()
	ld := h.LibraryData()
	s := mlink.EvalStream(ld, mlink.Native)

	err := r.Throw(s, "NeverRegistered")
	if !errors.Is(err, errman.Named(errman.ThrowNameError)) {
		t.Fatalf("err = %v, want ErrorManagerThrowNameError", err)
	}
	if len(h.Evaluations) != 0 || len(h.Tokens(ld.EvalLink)) != 0 {
		t.Fatal("unknown name must not ship parameters")
	}
}

func TestThrowByID(t *testing.T) {
	r := errman.NewRegistry()
	h := hosttest.New()
	ld := h.LibraryData()
	s := mlink.EvalStream(ld, mlink.Native)

	typeErr, _ := r.Find(errman.TypeError)
	err := r.ThrowByID(s, typeErr.ID())
	if !errors.Is(err, errman.Named(errman.TypeError)) {
		t.Fatalf("err = %v, want TypeError", err)
	}

	if err := r.ThrowByID(s, 999); !errors.Is(err, errman.Named(errman.ThrowIdError)) {
		t.Fatalf("err = %v, want ErrorManagerThrowIdError", err)
	}
}

func TestExceptionDetailsSymbolOverride(t *testing.T) {
	r := errman.NewRegistry()
	r.SetExceptionDetailsSymbol("MyLib`$Failure")

	h := hosttest.New()
	ld := h.LibraryData()
	s := mlink.EvalStream(ld, mlink.Native)

	if err := r.Throw(s, errman.MemoryError); !errors.Is(err, errman.Named(errman.MemoryError)) {
		t.Fatal(err)
	}
	if got := h.Evaluations[0][2].Str; got != "MyLib`$Failure" {
		t.Fatalf("details symbol on the wire = %q", got)
	}
}

func TestSendRegisteredErrors(t *testing.T) {
	r := errman.NewRegistry()
	h := hosttest.New()
	ld := h.LibraryData()
	s := mlink.NewStream(ld, h.CreateLink(), mlink.Native)

	if err := r.SendRegisteredErrors(s); err != nil {
		t.Fatal(err)
	}

	toks := h.Tokens(s.Link())
	if toks[0].Kind != numlink.TokenFunction || toks[0].Str != "Association" || toks[0].Argc != r.Len() {
		t.Fatalf("catalog head = %+v", toks[0])
	}
	// First entry: Rule["VersionError", List[7, message]].
	if toks[1].Str != "Rule" || toks[2].Str != errman.VersionError {
		t.Fatalf("first rule = %+v %+v", toks[1], toks[2])
	}
	if toks[3].Str != "List" || toks[3].Argc != 2 || toks[4].Int != 7 {
		t.Fatalf("first entry payload = %+v %+v", toks[3], toks[4])
	}
}
