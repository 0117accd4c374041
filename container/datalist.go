package container

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// DataList wraps a host record list. Record lists carry an ordered sequence
// of optionally named, type-heterogeneous nodes and cannot be Shared.
type DataList struct {
	ld   *numlink.LibraryData
	raw  numlink.DataStore
	life lifecycle
}

// DataNode is one decoded record list node.
type DataNode struct {
	Name  string
	Value any
}

// NewDataList creates an empty host record list in Manual mode.
func NewDataList(ld *numlink.LibraryData) *DataList {
	return &DataList{ld: ld, raw: ld.DataStore.Create(), life: lifecycleFor(Manual)}
}

// AdoptDataList wraps an existing handle. Shared mode is rejected with
// DLSharedDataStore: the host does not reference-count record lists.
func AdoptDataList(ld *numlink.LibraryData, raw numlink.DataStore, mode Passing) (*DataList, error) {
	if raw == 0 {
		return nil, errman.Named(errman.DLNullRawDataStore)
	}
	if mode == Shared {
		return nil, errman.Named(errman.DLSharedDataStore)
	}
	return &DataList{ld: ld, raw: raw, life: lifecycleFor(mode)}, nil
}

// Raw returns the wrapped handle without affecting ownership.
func (d *DataList) Raw() numlink.DataStore { return d.raw }

// Mode returns the wrapper's passing mode.
func (d *DataList) Mode() Passing { return d.life.mode }

// Drop frees the list if this wrapper owns it. Record lists are never
// Shared, so the disown hook is unreachable.
func (d *DataList) Drop() {
	d.life.drop(
		func() { d.ld.DataStore.Free(d.raw) },
		func() {},
	)
}

// Release moves the handle out of the wrapper, leaving it inert.
func (d *DataList) Release() numlink.DataStore {
	raw := d.raw
	d.raw = 0
	d.life.abandon()
	return raw
}

// Clone deep-copies every node into a fresh Manual wrapper.
func (d *DataList) Clone() (*DataList, error) {
	raw, err := d.ld.DataStore.Copy(d.raw)
	if err != nil {
		return nil, errman.Named(errman.MemoryError).WithDebug("record list copy: %v", err)
	}
	return &DataList{ld: d.ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// Convert builds a wrapper of another passing mode. Shared is rejected.
func (d *DataList) Convert(mode Passing) (*DataList, error) {
	if mode == Shared {
		return nil, errman.Named(errman.DLSharedDataStore)
	}
	if mode == d.life.mode && mode != Manual {
		return &DataList{ld: d.ld, raw: d.raw, life: lifecycleFor(mode)}, nil
	}
	c, err := d.Clone()
	if err != nil {
		return nil, err
	}
	c.life = lifecycleFor(mode)
	return c, nil
}

// ShareCount is always zero: record lists forbid sharing.
func (d *DataList) ShareCount() int { return 0 }

// Pass stores the handle in the host's result slot; Manual wrappers abandon
// ownership.
func (d *DataList) Pass(res *numlink.Argument) {
	res.Value = d.raw
	if d.life.mode == Manual {
		d.life.abandon()
	}
}

// Length reports the number of nodes.
func (d *DataList) Length() int { return d.ld.DataStore.Length(d.raw) }

// PushBack appends a node. An empty name appends a nameless node. Values
// outside the host's node vocabulary fail with DLPushBackTypeError.
func (d *DataList) PushBack(name string, value any) error {
	switch value.(type) {
	case bool, int64, float64, complex128, string,
		numlink.MTensor, numlink.MImage, numlink.MNumericArray, numlink.DataStore:
	default:
		return errman.Named(errman.DLPushBackTypeError).WithDebug("value of type %T", value)
	}
	if err := d.ld.DataStore.Add(d.raw, name, value); err != nil {
		return errman.Named(errman.DLPushBackTypeError).WithDebug("%v", err)
	}
	return nil
}

// Nodes decodes every node in order. Restartable: each call walks the list
// from its first node again.
func (d *DataList) Nodes() ([]DataNode, error) {
	out := make([]DataNode, 0, d.Length())
	api := d.ld.DataStore
	for n := api.First(d.raw); n != 0; n = api.Next(n) {
		v, err := api.NodeValue(n)
		if err != nil {
			return nil, errman.Named(errman.DLGetNodeDataError).WithDebug("node %d: %v", len(out), err)
		}
		out = append(out, DataNode{Name: api.NodeName(n), Value: v})
	}
	return out, nil
}
