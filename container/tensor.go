package container

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// GenericTensor wraps a host tensor handle with a passing mode.
type GenericTensor struct {
	ld   *numlink.LibraryData
	raw  numlink.MTensor
	life lifecycle
}

// NewTensor allocates a fresh host tensor. Fresh resources are always
// Manual: no other mode makes the host responsible for a handle it did not
// hand out.
func NewTensor(ld *numlink.LibraryData, t numlink.TensorType, dims []int) (*GenericTensor, error) {
	raw, err := ld.Tensor.New(t, dims)
	if err != nil {
		return nil, errman.Named(errman.TensorNewError).WithDebug("type %d, dims %v: %v", t, dims, err)
	}
	return &GenericTensor{ld: ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// AdoptTensor wraps an existing host handle under the given mode.
func AdoptTensor(ld *numlink.LibraryData, raw numlink.MTensor, mode Passing) (*GenericTensor, error) {
	if raw == 0 {
		return nil, errman.Named(errman.ArgumentCreateNull)
	}
	return &GenericTensor{ld: ld, raw: raw, life: lifecycleFor(mode)}, nil
}

// Raw returns the wrapped handle without affecting ownership.
func (t *GenericTensor) Raw() numlink.MTensor { return t.raw }

// Mode returns the wrapper's passing mode.
func (t *GenericTensor) Mode() Passing { return t.life.mode }

// Drop releases the handle according to the passing mode. Safe to call more
// than once.
func (t *GenericTensor) Drop() {
	t.life.drop(
		func() { t.ld.Tensor.Free(t.raw) },
		func() { t.ld.Tensor.Disown(t.raw) },
	)
}

// Release moves the handle out of the wrapper, leaving it inert.
func (t *GenericTensor) Release() numlink.MTensor {
	raw := t.raw
	t.raw = 0
	t.life.abandon()
	return raw
}

// Clone deep-copies the underlying data into a fresh Manual wrapper.
func (t *GenericTensor) Clone() (*GenericTensor, error) {
	raw, err := t.ld.Tensor.Clone(t.raw)
	if err != nil {
		return nil, errman.Named(errman.TensorCloneError).WithDebug("%v", err)
	}
	return &GenericTensor{ld: t.ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// Convert builds a wrapper of another passing mode. Converting to the same
// mode borrows (or shares); converting across modes deep-clones, so Manual
// to Manual also clones.
func (t *GenericTensor) Convert(mode Passing) (*GenericTensor, error) {
	if mode == t.life.mode && mode != Manual {
		if mode == Shared {
			t.ld.Tensor.Share(t.raw)
		}
		return &GenericTensor{ld: t.ld, raw: t.raw, life: lifecycleFor(mode)}, nil
	}
	c, err := t.Clone()
	if err != nil {
		return nil, err
	}
	c.life = lifecycleFor(mode)
	return c, nil
}

// ShareCount reports the host's reference count for the handle.
func (t *GenericTensor) ShareCount() int { return t.ld.Tensor.ShareCount(t.raw) }

// Pass stores the handle in the host's result slot. A Manual wrapper
// abandons ownership: the host frees the handle from now on.
func (t *GenericTensor) Pass(res *numlink.Argument) {
	res.Value = t.raw
	if t.life.mode == Manual {
		t.life.abandon()
	}
}

func (t *GenericTensor) Rank() int                { return t.ld.Tensor.Rank(t.raw) }
func (t *GenericTensor) Dimensions() []int        { return t.ld.Tensor.Dimensions(t.raw) }
func (t *GenericTensor) Type() numlink.TensorType { return t.ld.Tensor.Type(t.raw) }
func (t *GenericTensor) FlattenedLength() int     { return t.ld.Tensor.FlattenedLength(t.raw) }
