package container

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// GenericNumericArray wraps a host numeric array handle with a passing mode.
type GenericNumericArray struct {
	ld   *numlink.LibraryData
	raw  numlink.MNumericArray
	life lifecycle
}

// NewNumericArray allocates a fresh host numeric array in Manual mode.
func NewNumericArray(ld *numlink.LibraryData, t numlink.NumericType, dims []int) (*GenericNumericArray, error) {
	raw, err := ld.NumericArray.New(t, dims)
	if err != nil {
		return nil, errman.Named(errman.NumericArrayNewError).WithDebug("type %d, dims %v: %v", t, dims, err)
	}
	return &GenericNumericArray{ld: ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// AdoptNumericArray wraps an existing host handle under the given mode.
func AdoptNumericArray(ld *numlink.LibraryData, raw numlink.MNumericArray, mode Passing) (*GenericNumericArray, error) {
	if raw == 0 {
		return nil, errman.Named(errman.ArgumentCreateNull)
	}
	return &GenericNumericArray{ld: ld, raw: raw, life: lifecycleFor(mode)}, nil
}

// Raw returns the wrapped handle without affecting ownership.
func (n *GenericNumericArray) Raw() numlink.MNumericArray { return n.raw }

// Mode returns the wrapper's passing mode.
func (n *GenericNumericArray) Mode() Passing { return n.life.mode }

// Drop releases the handle according to the passing mode.
func (n *GenericNumericArray) Drop() {
	n.life.drop(
		func() { n.ld.NumericArray.Free(n.raw) },
		func() { n.ld.NumericArray.Disown(n.raw) },
	)
}

// Release moves the handle out of the wrapper, leaving it inert.
func (n *GenericNumericArray) Release() numlink.MNumericArray {
	raw := n.raw
	n.raw = 0
	n.life.abandon()
	return raw
}

// Clone deep-copies the underlying data into a fresh Manual wrapper.
func (n *GenericNumericArray) Clone() (*GenericNumericArray, error) {
	raw, err := n.ld.NumericArray.Clone(n.raw)
	if err != nil {
		return nil, errman.Named(errman.NumericArrayCloneError).WithDebug("%v", err)
	}
	return &GenericNumericArray{ld: n.ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// Convert builds a wrapper of another passing mode; see GenericTensor.Convert.
func (n *GenericNumericArray) Convert(mode Passing) (*GenericNumericArray, error) {
	if mode == n.life.mode && mode != Manual {
		if mode == Shared {
			n.ld.NumericArray.Share(n.raw)
		}
		return &GenericNumericArray{ld: n.ld, raw: n.raw, life: lifecycleFor(mode)}, nil
	}
	c, err := n.Clone()
	if err != nil {
		return nil, err
	}
	c.life = lifecycleFor(mode)
	return c, nil
}

// ConvertType asks the host for a copy with a different element type. The
// result is a fresh Manual wrapper.
func (n *GenericNumericArray) ConvertType(t numlink.NumericType) (*GenericNumericArray, error) {
	raw, err := n.ld.NumericArray.Convert(n.raw, t)
	if err != nil {
		return nil, errman.Named(errman.NumericArrayConversionError).WithDebug("target type %d: %v", t, err)
	}
	return &GenericNumericArray{ld: n.ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// ShareCount reports the host's reference count for the handle.
func (n *GenericNumericArray) ShareCount() int { return n.ld.NumericArray.ShareCount(n.raw) }

// Pass stores the handle in the host's result slot; Manual wrappers abandon
// ownership.
func (n *GenericNumericArray) Pass(res *numlink.Argument) {
	res.Value = n.raw
	if n.life.mode == Manual {
		n.life.abandon()
	}
}

func (n *GenericNumericArray) Rank() int                 { return n.ld.NumericArray.Rank(n.raw) }
func (n *GenericNumericArray) Dimensions() []int         { return n.ld.NumericArray.Dimensions(n.raw) }
func (n *GenericNumericArray) Type() numlink.NumericType { return n.ld.NumericArray.Type(n.raw) }
func (n *GenericNumericArray) FlattenedLength() int      { return n.ld.NumericArray.FlattenedLength(n.raw) }
