package argman_test

import (
	"errors"
	"testing"

	"github.com/numlink/numlink"
	"github.com/numlink/numlink/argman"
	"github.com/numlink/numlink/container"
	"github.com/numlink/numlink/errman"
	"github.com/numlink/numlink/hosttest"
)

func TestScalarGettersAndSetters(t *testing.T) {
	h := hosttest.New()
	ld := h.LibraryData()
	args := []numlink.Argument{
		{Value: int64(5)},
		{Value: 2.5},
		{Value: complex(1, 2)},
		{Value: true},
		{Value: "hello"},
	}
	var res numlink.Argument
	m, err := argman.NewManager(ld, args, &res)
	if err != nil {
		t.Fatal(err)
	}

	if v, err := m.Integer(0); err != nil || v != 5 {
		t.Fatalf("Integer = %d, %v", v, err)
	}
	if v, err := m.Real(1); err != nil || v != 2.5 {
		t.Fatalf("Real = %g, %v", v, err)
	}
	if v, err := m.Complex(2); err != nil || v != complex(1, 2) {
		t.Fatalf("Complex = %v, %v", v, err)
	}
	if v, err := m.Boolean(3); err != nil || !v {
		t.Fatalf("Boolean = %v, %v", v, err)
	}
	if v, err := m.String(4); err != nil || v != "hello" {
		t.Fatalf("String = %q, %v", v, err)
	}

	if _, err := m.Integer(5); !errors.Is(err, errman.Named(errman.MArgumentIndexError)) {
		t.Fatalf("out of range err = %v, want MArgumentIndexError", err)
	}
	if _, err := m.Integer(1); !errors.Is(err, errman.Named(errman.TypeError)) {
		t.Fatalf("wrong type err = %v, want TypeError", err)
	}

	m.SetString("done")
	if res.Value != "done" {
		t.Fatalf("result = %v", res.Value)
	}
}

func TestContainerArgumentTypeChecks(t *testing.T) {
	h := hosttest.New()
	ld := h.LibraryData()
	args := []numlink.Argument{{Value: int64(1)}}
	var res numlink.Argument
	m, _ := argman.NewManager(ld, args, &res)

	if _, err := m.Tensor(0, container.Automatic); !errors.Is(err, errman.Named(errman.MArgumentTensorError)) {
		t.Fatalf("err = %v, want MArgumentTensorError", err)
	}
	if _, err := m.Image(0, container.Automatic); !errors.Is(err, errman.Named(errman.MArgumentImageError)) {
		t.Fatalf("err = %v, want MArgumentImageError", err)
	}
	if _, err := m.NumericArray(0, container.Automatic); !errors.Is(err, errman.Named(errman.MArgumentNumericArrayError)) {
		t.Fatalf("err = %v, want MArgumentNumericArrayError", err)
	}
}

func TestInvalidLibraryDataRejected(t *testing.T) {
	ld := &numlink.LibraryData{} // no per-kind APIs
	_, err := argman.NewManager(ld, nil, &numlink.Argument{})
	if !errors.Is(err, errman.Named(errman.MArgumentLibDataError)) {
		t.Fatalf("err = %v, want MArgumentLibDataError", err)
	}
}

func TestRunReturnContract(t *testing.T) {
	h := hosttest.New()
	ld := h.LibraryData()
	var res numlink.Argument

	ok := argman.Run(ld, nil, &res, func(m *argman.Manager) error { return nil })
	if ok != 0 {
		t.Fatalf("success code = %d, want 0", ok)
	}

	rank := argman.Run(ld, nil, &res, func(m *argman.Manager) error {
		return errman.Named(errman.RankError)
	})
	if want := errman.Named(errman.RankError).ID(); rank != want {
		t.Fatalf("rank code = %d, want %d", rank, want)
	}

	plain := argman.Run(ld, nil, &res, func(m *argman.Manager) error {
		return errors.New("something else")
	})
	if want := errman.Named(errman.FunctionError).ID(); plain != want {
		t.Fatalf("plain error code = %d, want %d", plain, want)
	}

	panicked := argman.Run(ld, nil, &res, func(m *argman.Manager) error {
		panic("boom")
	})
	if want := errman.Named(errman.FunctionError).ID(); panicked != want {
		t.Fatalf("panic code = %d, want %d", panicked, want)
	}
}

func TestRunAborted(t *testing.T) {
	h := hosttest.New()
	ld := h.LibraryData()
	h.SetAborted(true)
	var res numlink.Argument

	code := argman.Run(ld, nil, &res, func(m *argman.Manager) error {
		if err := m.CheckAbort(); err != nil {
			return err
		}
		t.Fatal("handler body ran after abort")
		return nil
	})
	if want := errman.Named(errman.Aborted).ID(); code != want {
		t.Fatalf("abort code = %d, want %d", code, want)
	}
}

func TestEchoNumericArray(t *testing.T) {
	h := hosttest.New()
	ld := h.LibraryData()

	raw, err := ld.NumericArray.New(numlink.NumericUint8, []int{4})
	if err != nil {
		t.Fatal(err)
	}
	copy(ld.NumericArray.Data(raw).([]uint8), []uint8{1, 2, 3, 4})

	args := []numlink.Argument{{Value: raw}}
	var res numlink.Argument

	code := argman.Run(ld, args, &res, func(m *argman.Manager) error {
		in, err := m.NumericArray(0, container.Automatic)
		if err != nil {
			return err
		}
		out, err := in.Clone()
		if err != nil {
			return err
		}
		m.SetNumericArray(out)
		return nil
	})
	if code != 0 {
		t.Fatalf("code = %d", code)
	}

	got, ok := res.Value.(numlink.MNumericArray)
	if !ok {
		t.Fatalf("result holds %T", res.Value)
	}
	if got == raw {
		t.Fatal("echo returned the input handle instead of a copy")
	}
	if ld.NumericArray.Type(got) != numlink.NumericUint8 {
		t.Fatalf("result type = %d", ld.NumericArray.Type(got))
	}
	data := ld.NumericArray.Data(got).([]uint8)
	for i, want := range []uint8{1, 2, 3, 4} {
		if data[i] != want {
			t.Fatalf("data[%d] = %d, want %d", i, data[i], want)
		}
	}

	// Ownership went to the host: the handler's Manual clone must not have
	// been freed on the way out.
	st, _ := h.NumericArrayStats(got)
	if st.Frees != 0 {
		t.Fatalf("result handle frees = %d, want 0", st.Frees)
	}
}

func TestDataListArgumentRoundTrip(t *testing.T) {
	h := hosttest.New()
	ld := h.LibraryData()

	ds := ld.DataStore.Create()
	if err := ld.DataStore.Add(ds, "n", int64(7)); err != nil {
		t.Fatal(err)
	}
	args := []numlink.Argument{{Value: ds}}
	var res numlink.Argument
	m, _ := argman.NewManager(ld, args, &res)

	dl, err := m.DataList(0, container.Automatic)
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := dl.Nodes()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0].Name != "n" || nodes[0].Value != int64(7) {
		t.Fatalf("nodes = %+v", nodes)
	}
}
