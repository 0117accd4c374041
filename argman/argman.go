package argman

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/container"
	"github.com/numlink/numlink/errman"
	"github.com/numlink/numlink/mlink"
)

// Manager gives typed access to one call's argument array and result slot.
type Manager struct {
	ld   *numlink.LibraryData
	args []numlink.Argument
	res  *numlink.Argument
}

// NewManager validates the ABI bundle and wraps one call's arguments.
func NewManager(ld *numlink.LibraryData, args []numlink.Argument, res *numlink.Argument) (*Manager, error) {
	if !ld.Valid() {
		return nil, errman.Named(errman.MArgumentLibDataError)
	}
	return &Manager{ld: ld, args: args, res: res}, nil
}

// LibraryData returns the ABI bundle for this call.
func (m *Manager) LibraryData() *numlink.LibraryData { return m.ld }

// Len returns the number of arguments.
func (m *Manager) Len() int { return len(m.args) }

func (m *Manager) arg(i int) (*numlink.Argument, error) {
	if i < 0 || i >= len(m.args) {
		return nil, errman.Named(errman.MArgumentIndexError).WithDebug("index %d of %d", i, len(m.args))
	}
	return &m.args[i], nil
}

// Integer returns argument i as a machine integer.
func (m *Manager) Integer(i int) (int64, error) {
	a, err := m.arg(i)
	if err != nil {
		return 0, err
	}
	v, ok := a.Value.(int64)
	if !ok {
		return 0, errman.Named(errman.TypeError).WithDebug("argument %d holds %T, want int64", i, a.Value)
	}
	return v, nil
}

// Real returns argument i as a machine real.
func (m *Manager) Real(i int) (float64, error) {
	a, err := m.arg(i)
	if err != nil {
		return 0, err
	}
	v, ok := a.Value.(float64)
	if !ok {
		return 0, errman.Named(errman.TypeError).WithDebug("argument %d holds %T, want float64", i, a.Value)
	}
	return v, nil
}

// Complex returns argument i as a machine complex.
func (m *Manager) Complex(i int) (complex128, error) {
	a, err := m.arg(i)
	if err != nil {
		return 0, err
	}
	v, ok := a.Value.(complex128)
	if !ok {
		return 0, errman.Named(errman.TypeError).WithDebug("argument %d holds %T, want complex128", i, a.Value)
	}
	return v, nil
}

// Boolean returns argument i as a boolean.
func (m *Manager) Boolean(i int) (bool, error) {
	a, err := m.arg(i)
	if err != nil {
		return false, err
	}
	v, ok := a.Value.(bool)
	if !ok {
		return false, errman.Named(errman.TypeError).WithDebug("argument %d holds %T, want bool", i, a.Value)
	}
	return v, nil
}

// String returns argument i as a string. The returned value is owned by the
// caller; no host release is needed afterwards.
func (m *Manager) String(i int) (string, error) {
	a, err := m.arg(i)
	if err != nil {
		return "", err
	}
	v, ok := a.Value.(string)
	if !ok {
		return "", errman.Named(errman.TypeError).WithDebug("argument %d holds %T, want string", i, a.Value)
	}
	return v, nil
}

// Tensor adopts argument i as a tensor under the given passing mode.
func (m *Manager) Tensor(i int, mode container.Passing) (*container.GenericTensor, error) {
	a, err := m.arg(i)
	if err != nil {
		return nil, err
	}
	raw, ok := a.Value.(numlink.MTensor)
	if !ok {
		return nil, errman.Named(errman.MArgumentTensorError).WithDebug("argument %d holds %T", i, a.Value)
	}
	gt, err := container.AdoptTensor(m.ld, raw, mode)
	if err != nil {
		return nil, errman.Named(errman.MArgumentTensorError).WithDebug("argument %d: %v", i, err)
	}
	return gt, nil
}

// Image adopts argument i as an image under the given passing mode.
func (m *Manager) Image(i int, mode container.Passing) (*container.GenericImage, error) {
	a, err := m.arg(i)
	if err != nil {
		return nil, err
	}
	raw, ok := a.Value.(numlink.MImage)
	if !ok {
		return nil, errman.Named(errman.MArgumentImageError).WithDebug("argument %d holds %T", i, a.Value)
	}
	im, err := container.AdoptImage(m.ld, raw, mode)
	if err != nil {
		return nil, errman.Named(errman.MArgumentImageError).WithDebug("argument %d: %v", i, err)
	}
	return im, nil
}

// NumericArray adopts argument i as a numeric array under the given passing
// mode.
func (m *Manager) NumericArray(i int, mode container.Passing) (*container.GenericNumericArray, error) {
	a, err := m.arg(i)
	if err != nil {
		return nil, err
	}
	raw, ok := a.Value.(numlink.MNumericArray)
	if !ok {
		return nil, errman.Named(errman.MArgumentNumericArrayError).WithDebug("argument %d holds %T", i, a.Value)
	}
	na, err := container.AdoptNumericArray(m.ld, raw, mode)
	if err != nil {
		return nil, errman.Named(errman.MArgumentNumericArrayError).WithDebug("argument %d: %v", i, err)
	}
	return na, nil
}

// DataList adopts argument i as a record list under the given passing mode.
func (m *Manager) DataList(i int, mode container.Passing) (*container.DataList, error) {
	a, err := m.arg(i)
	if err != nil {
		return nil, err
	}
	raw, ok := a.Value.(numlink.DataStore)
	if !ok {
		return nil, errman.Named(errman.DLNullRawDataStore).WithDebug("argument %d holds %T", i, a.Value)
	}
	return container.AdoptDataList(m.ld, raw, mode)
}

// Result returns the host's output slot for direct container passing.
func (m *Manager) Result() *numlink.Argument { return m.res }

// SetInteger stores a machine integer result.
func (m *Manager) SetInteger(v int64) { m.res.Value = v }

// SetReal stores a machine real result.
func (m *Manager) SetReal(v float64) { m.res.Value = v }

// SetComplex stores a machine complex result.
func (m *Manager) SetComplex(v complex128) { m.res.Value = v }

// SetBoolean stores a boolean result.
func (m *Manager) SetBoolean(v bool) { m.res.Value = v }

// SetString stores a string result.
func (m *Manager) SetString(v string) { m.res.Value = v }

// SetTensor passes a tensor as the result; Manual wrappers hand ownership to
// the host.
func (m *Manager) SetTensor(t *container.GenericTensor) { t.Pass(m.res) }

// SetImage passes an image as the result.
func (m *Manager) SetImage(im *container.GenericImage) { im.Pass(m.res) }

// SetNumericArray passes a numeric array as the result.
func (m *Manager) SetNumericArray(na *container.GenericNumericArray) { na.Pass(m.res) }

// SetDataList passes a record list as the result.
func (m *Manager) SetDataList(dl *container.DataList) { dl.Pass(m.res) }

// CheckAbort returns the Aborted registry error when the user has requested
// cancellation, nil otherwise. Handlers call it at convenient points and
// return its result.
func (m *Manager) CheckAbort() error {
	if m.ld.AbortQ != nil && m.ld.AbortQ() {
		return errman.Named(errman.Aborted)
	}
	return nil
}

// EvalStream opens a stream over the host's evaluation channel.
func (m *Manager) EvalStream(enc mlink.Encoding) *mlink.Stream {
	return mlink.EvalStream(m.ld, enc)
}

// Throw ships params to the failure-parameters symbol and returns the
// registry error for name; handlers return it as-is.
func (m *Manager) Throw(name string, params ...any) error {
	return errman.Default().Throw(m.EvalStream(mlink.Native), name, params...)
}
