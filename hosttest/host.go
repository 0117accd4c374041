package hosttest

import (
	"errors"
	"fmt"

	"github.com/numlink/numlink"
)

// Stats holds per-handle lifecycle counters.
type Stats struct {
	Frees      int
	Disowns    int
	Shares     int
	ShareCount int
	Freed      bool
}

// Host is an in-memory stand-in for the numeric-computing environment.
// It is not safe for concurrent use; neither is the real thing.
type Host struct {
	next uintptr

	tensors map[numlink.MTensor]*tensorRec
	images  map[numlink.MImage]*imageRec
	arrays  map[numlink.MNumericArray]*arrayRec
	stores  map[numlink.DataStore]*storeRec
	nodes   map[numlink.DataStoreNode]*nodeRec
	links   map[numlink.Link]*linkRec

	evalLink numlink.Link
	aborted  bool

	// Evaluations records every expression handed to ProcessEval, oldest
	// first, as flat token slices.
	Evaluations [][]Token
	// StringReleases counts ReleaseString calls across all links.
	StringReleases int
	// ByteStringPuts counts PutByteString calls, for fast-path assertions.
	ByteStringPuts int

	failOps map[string]bool
}

// New creates an empty host double.
func New() *Host {
	return &Host{
		tensors: make(map[numlink.MTensor]*tensorRec),
		images:  make(map[numlink.MImage]*imageRec),
		arrays:  make(map[numlink.MNumericArray]*arrayRec),
		stores:  make(map[numlink.DataStore]*storeRec),
		nodes:   make(map[numlink.DataStoreNode]*nodeRec),
		links:   make(map[numlink.Link]*linkRec),
		failOps: make(map[string]bool),
	}
}

// FailOp makes every call of the named host operation fail until cleared.
// Names follow "kind.op": "tensor.clone", "image.new", "link.putstring".
func (h *Host) FailOp(name string) { h.failOps[name] = true }

// ClearOp re-enables a previously failed operation.
func (h *Host) ClearOp(name string) { delete(h.failOps, name) }

func (h *Host) failing(name string) error {
	if h.failOps[name] {
		return fmt.Errorf("hosttest: forced failure of %s", name)
	}
	return nil
}

// SetAborted flips the user-abort flag observed through LibraryData.AbortQ.
func (h *Host) SetAborted(v bool) { h.aborted = v }

// LibraryData returns an ABI bundle backed by this double. The evaluation
// link is created on first use and shared across calls.
func (h *Host) LibraryData() *numlink.LibraryData {
	if h.evalLink == 0 {
		h.evalLink = h.CreateLink()
	}
	return &numlink.LibraryData{
		Tensor:       &tensorHost{h},
		Image:        &imageHost{h},
		NumericArray: &arrayHost{h},
		DataStore:    &storeHost{h},
		Link:         &linkHost{h},
		EvalLink:     h.evalLink,
		ProcessEval:  h.processEval,
		AbortQ:       func() bool { return h.aborted },
	}
}

func (h *Host) handle() uintptr {
	h.next++
	return h.next
}

var (
	errBadHandle  = errors.New("hosttest: invalid or freed handle")
	errEmptyLink  = errors.New("hosttest: read past end of link")
	errWrongToken = errors.New("hosttest: next token has a different type")
)

// --- tensors ---

type tensorRec struct {
	Stats
	typ  numlink.TensorType
	dims []int
	data any
}

func (h *Host) tensor(t numlink.MTensor) *tensorRec {
	r := h.tensors[t]
	if r == nil || r.Freed {
		return nil
	}
	return r
}

// TensorStats returns lifecycle counters for a tensor handle, freed or not.
func (h *Host) TensorStats(t numlink.MTensor) (Stats, bool) {
	if r, ok := h.tensors[t]; ok {
		return r.Stats, true
	}
	return Stats{}, false
}

// LiveTensors counts tensor handles that have not been freed.
func (h *Host) LiveTensors() int { return live(h.tensors, func(r *tensorRec) bool { return r.Freed }) }

func live[K comparable, R any](m map[K]R, freed func(R) bool) int {
	n := 0
	for _, r := range m {
		if !freed(r) {
			n++
		}
	}
	return n
}

type tensorHost struct{ h *Host }

func (a *tensorHost) New(t numlink.TensorType, dims []int) (numlink.MTensor, error) {
	if err := a.h.failing("tensor.new"); err != nil {
		return 0, err
	}
	n := flatLen(dims)
	var data any
	switch t {
	case numlink.TensorInteger:
		data = make([]int64, n)
	case numlink.TensorReal:
		data = make([]float64, n)
	case numlink.TensorComplex:
		data = make([]complex128, n)
	default:
		return 0, fmt.Errorf("hosttest: bad tensor type %d", t)
	}
	ht := numlink.MTensor(a.h.handle())
	a.h.tensors[ht] = &tensorRec{typ: t, dims: append([]int(nil), dims...), data: data}
	return ht, nil
}

func (a *tensorHost) Clone(t numlink.MTensor) (numlink.MTensor, error) {
	if err := a.h.failing("tensor.clone"); err != nil {
		return 0, err
	}
	r := a.h.tensor(t)
	if r == nil {
		return 0, errBadHandle
	}
	ht := numlink.MTensor(a.h.handle())
	a.h.tensors[ht] = &tensorRec{typ: r.typ, dims: append([]int(nil), r.dims...), data: cloneData(r.data)}
	return ht, nil
}

func (a *tensorHost) Free(t numlink.MTensor) {
	if r, ok := a.h.tensors[t]; ok {
		r.Frees++
		r.Freed = true
	}
}

func (a *tensorHost) Disown(t numlink.MTensor) {
	if r := a.h.tensor(t); r != nil {
		r.Disowns++
		if r.ShareCount > 0 {
			r.ShareCount--
		}
	}
}

func (a *tensorHost) Share(t numlink.MTensor) {
	if r := a.h.tensor(t); r != nil {
		r.Shares++
		r.ShareCount++
	}
}

func (a *tensorHost) ShareCount(t numlink.MTensor) int {
	if r := a.h.tensor(t); r != nil {
		return r.ShareCount
	}
	return 0
}

func (a *tensorHost) Rank(t numlink.MTensor) int {
	if r := a.h.tensor(t); r != nil {
		return len(r.dims)
	}
	return 0
}

func (a *tensorHost) Dimensions(t numlink.MTensor) []int {
	if r := a.h.tensor(t); r != nil {
		return append([]int(nil), r.dims...)
	}
	return nil
}

func (a *tensorHost) Type(t numlink.MTensor) numlink.TensorType {
	if r := a.h.tensor(t); r != nil {
		return r.typ
	}
	return 0
}

func (a *tensorHost) FlattenedLength(t numlink.MTensor) int {
	if r := a.h.tensor(t); r != nil {
		return flatLen(r.dims)
	}
	return 0
}

func (a *tensorHost) Data(t numlink.MTensor) any {
	if r := a.h.tensor(t); r != nil {
		return r.data
	}
	return nil
}

// --- numeric arrays ---

type arrayRec struct {
	Stats
	typ  numlink.NumericType
	dims []int
	data any
}

func (h *Host) array(na numlink.MNumericArray) *arrayRec {
	r := h.arrays[na]
	if r == nil || r.Freed {
		return nil
	}
	return r
}

// NumericArrayStats returns lifecycle counters for a numeric array handle.
func (h *Host) NumericArrayStats(na numlink.MNumericArray) (Stats, bool) {
	if r, ok := h.arrays[na]; ok {
		return r.Stats, true
	}
	return Stats{}, false
}

// LiveNumericArrays counts numeric array handles that have not been freed.
func (h *Host) LiveNumericArrays() int {
	return live(h.arrays, func(r *arrayRec) bool { return r.Freed })
}

type arrayHost struct{ h *Host }

func allocNumeric(t numlink.NumericType, n int) (any, error) {
	switch t {
	case numlink.NumericInt8:
		return make([]int8, n), nil
	case numlink.NumericUint8:
		return make([]uint8, n), nil
	case numlink.NumericInt16:
		return make([]int16, n), nil
	case numlink.NumericUint16:
		return make([]uint16, n), nil
	case numlink.NumericInt32:
		return make([]int32, n), nil
	case numlink.NumericUint32:
		return make([]uint32, n), nil
	case numlink.NumericInt64:
		return make([]int64, n), nil
	case numlink.NumericUint64:
		return make([]uint64, n), nil
	case numlink.NumericFloat32:
		return make([]float32, n), nil
	case numlink.NumericFloat64:
		return make([]float64, n), nil
	case numlink.NumericComplexFloat32:
		return make([]complex64, n), nil
	case numlink.NumericComplexFloat64:
		return make([]complex128, n), nil
	}
	return nil, fmt.Errorf("hosttest: bad numeric type %d", t)
}

func (a *arrayHost) New(t numlink.NumericType, dims []int) (numlink.MNumericArray, error) {
	if err := a.h.failing("narray.new"); err != nil {
		return 0, err
	}
	data, err := allocNumeric(t, flatLen(dims))
	if err != nil {
		return 0, err
	}
	ha := numlink.MNumericArray(a.h.handle())
	a.h.arrays[ha] = &arrayRec{typ: t, dims: append([]int(nil), dims...), data: data}
	return ha, nil
}

func (a *arrayHost) Clone(na numlink.MNumericArray) (numlink.MNumericArray, error) {
	if err := a.h.failing("narray.clone"); err != nil {
		return 0, err
	}
	r := a.h.array(na)
	if r == nil {
		return 0, errBadHandle
	}
	ha := numlink.MNumericArray(a.h.handle())
	a.h.arrays[ha] = &arrayRec{typ: r.typ, dims: append([]int(nil), r.dims...), data: cloneData(r.data)}
	return ha, nil
}

func (a *arrayHost) Free(na numlink.MNumericArray) {
	if r, ok := a.h.arrays[na]; ok {
		r.Frees++
		r.Freed = true
	}
}

func (a *arrayHost) Disown(na numlink.MNumericArray) {
	if r := a.h.array(na); r != nil {
		r.Disowns++
		if r.ShareCount > 0 {
			r.ShareCount--
		}
	}
}

func (a *arrayHost) Share(na numlink.MNumericArray) {
	if r := a.h.array(na); r != nil {
		r.Shares++
		r.ShareCount++
	}
}

func (a *arrayHost) ShareCount(na numlink.MNumericArray) int {
	if r := a.h.array(na); r != nil {
		return r.ShareCount
	}
	return 0
}

func (a *arrayHost) Convert(na numlink.MNumericArray, t numlink.NumericType) (numlink.MNumericArray, error) {
	if err := a.h.failing("narray.convert"); err != nil {
		return 0, err
	}
	r := a.h.array(na)
	if r == nil {
		return 0, errBadHandle
	}
	out, err := a.New(t, r.dims)
	if err != nil {
		return 0, err
	}
	convertNumeric(a.h.arrays[out].data, r.data)
	return out, nil
}

func (a *arrayHost) Rank(na numlink.MNumericArray) int {
	if r := a.h.array(na); r != nil {
		return len(r.dims)
	}
	return 0
}

func (a *arrayHost) Dimensions(na numlink.MNumericArray) []int {
	if r := a.h.array(na); r != nil {
		return append([]int(nil), r.dims...)
	}
	return nil
}

func (a *arrayHost) Type(na numlink.MNumericArray) numlink.NumericType {
	if r := a.h.array(na); r != nil {
		return r.typ
	}
	return 0
}

func (a *arrayHost) FlattenedLength(na numlink.MNumericArray) int {
	if r := a.h.array(na); r != nil {
		return flatLen(r.dims)
	}
	return 0
}

func (a *arrayHost) Data(na numlink.MNumericArray) any {
	if r := a.h.array(na); r != nil {
		return r.data
	}
	return nil
}

// --- images ---

type imageRec struct {
	Stats
	typ         numlink.ImageType
	cs          numlink.ColorSpace
	slices      int // 0 for 2D
	rows        int
	cols        int
	channels    int
	interleaved bool
	data        any
}

func (r *imageRec) flatLen() int {
	s := r.slices
	if s == 0 {
		s = 1
	}
	return s * r.rows * r.cols * r.channels
}

func (h *Host) image(im numlink.MImage) *imageRec {
	r := h.images[im]
	if r == nil || r.Freed {
		return nil
	}
	return r
}

// ImageStats returns lifecycle counters for an image handle.
func (h *Host) ImageStats(im numlink.MImage) (Stats, bool) {
	if r, ok := h.images[im]; ok {
		return r.Stats, true
	}
	return Stats{}, false
}

// LiveImages counts image handles that have not been freed.
func (h *Host) LiveImages() int { return live(h.images, func(r *imageRec) bool { return r.Freed }) }

type imageHost struct{ h *Host }

func allocImage(t numlink.ImageType, n int) (any, error) {
	switch t {
	case numlink.ImageBit, numlink.ImageBit8:
		return make([]uint8, n), nil
	case numlink.ImageBit16:
		return make([]uint16, n), nil
	case numlink.ImageReal32:
		return make([]float32, n), nil
	case numlink.ImageReal64:
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("hosttest: bad image type %d", t)
}

func (a *imageHost) New2D(width, height, channels int, t numlink.ImageType, cs numlink.ColorSpace, interleaved bool) (numlink.MImage, error) {
	return a.newImage(0, width, height, channels, t, cs, interleaved)
}

func (a *imageHost) New3D(slices, width, height, channels int, t numlink.ImageType, cs numlink.ColorSpace, interleaved bool) (numlink.MImage, error) {
	if slices <= 0 {
		return 0, fmt.Errorf("hosttest: 3D image needs positive slice count")
	}
	return a.newImage(slices, width, height, channels, t, cs, interleaved)
}

func (a *imageHost) newImage(slices, width, height, channels int, t numlink.ImageType, cs numlink.ColorSpace, interleaved bool) (numlink.MImage, error) {
	if err := a.h.failing("image.new"); err != nil {
		return 0, err
	}
	rec := &imageRec{typ: t, cs: cs, slices: slices, rows: height, cols: width, channels: channels, interleaved: interleaved}
	data, err := allocImage(t, rec.flatLen())
	if err != nil {
		return 0, err
	}
	rec.data = data
	hi := numlink.MImage(a.h.handle())
	a.h.images[hi] = rec
	return hi, nil
}

func (a *imageHost) Clone(im numlink.MImage) (numlink.MImage, error) {
	if err := a.h.failing("image.clone"); err != nil {
		return 0, err
	}
	r := a.h.image(im)
	if r == nil {
		return 0, errBadHandle
	}
	c := *r
	c.Stats = Stats{}
	c.data = cloneData(r.data)
	hi := numlink.MImage(a.h.handle())
	a.h.images[hi] = &c
	return hi, nil
}

func (a *imageHost) Free(im numlink.MImage) {
	if r, ok := a.h.images[im]; ok {
		r.Frees++
		r.Freed = true
	}
}

func (a *imageHost) Disown(im numlink.MImage) {
	if r := a.h.image(im); r != nil {
		r.Disowns++
		if r.ShareCount > 0 {
			r.ShareCount--
		}
	}
}

func (a *imageHost) Share(im numlink.MImage) {
	if r := a.h.image(im); r != nil {
		r.Shares++
		r.ShareCount++
	}
}

func (a *imageHost) ShareCount(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		return r.ShareCount
	}
	return 0
}

func (a *imageHost) ConvertType(im numlink.MImage, t numlink.ImageType, interleaved bool) (numlink.MImage, error) {
	if err := a.h.failing("image.convert"); err != nil {
		return 0, err
	}
	r := a.h.image(im)
	if r == nil {
		return 0, errBadHandle
	}
	c := *r
	c.Stats = Stats{}
	c.typ = t
	c.interleaved = interleaved
	data, err := allocImage(t, r.flatLen())
	if err != nil {
		return 0, err
	}
	convertNumeric(data, r.data)
	c.data = data
	hi := numlink.MImage(a.h.handle())
	a.h.images[hi] = &c
	return hi, nil
}

func (a *imageHost) ColorSpace(im numlink.MImage) numlink.ColorSpace {
	if r := a.h.image(im); r != nil {
		return r.cs
	}
	return numlink.ColorSpaceAutomatic
}

func (a *imageHost) Rows(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		return r.rows
	}
	return 0
}

func (a *imageHost) Columns(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		return r.cols
	}
	return 0
}

func (a *imageHost) Slices(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		return r.slices
	}
	return 0
}

func (a *imageHost) Channels(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		return r.channels
	}
	return 0
}

func (a *imageHost) AlphaChannelQ(im numlink.MImage) bool { return false }

func (a *imageHost) InterleavedQ(im numlink.MImage) bool {
	if r := a.h.image(im); r != nil {
		return r.interleaved
	}
	return false
}

func (a *imageHost) Rank(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		if r.slices > 0 {
			return 3
		}
		return 2
	}
	return 0
}

func (a *imageHost) Type(im numlink.MImage) numlink.ImageType {
	if r := a.h.image(im); r != nil {
		return r.typ
	}
	return 0
}

func (a *imageHost) FlattenedLength(im numlink.MImage) int {
	if r := a.h.image(im); r != nil {
		return r.flatLen()
	}
	return 0
}

func (a *imageHost) Data(im numlink.MImage) any {
	if r := a.h.image(im); r != nil {
		return r.data
	}
	return nil
}

// --- data stores ---

type storeRec struct {
	Stats
	first, last numlink.DataStoreNode
	length      int
}

type nodeRec struct {
	name  string
	value any
	next  numlink.DataStoreNode
}

func (h *Host) store(ds numlink.DataStore) *storeRec {
	r := h.stores[ds]
	if r == nil || r.Freed {
		return nil
	}
	return r
}

// DataStoreStats returns lifecycle counters for a record list handle.
func (h *Host) DataStoreStats(ds numlink.DataStore) (Stats, bool) {
	if r, ok := h.stores[ds]; ok {
		return r.Stats, true
	}
	return Stats{}, false
}

// LiveDataStores counts record list handles that have not been freed.
func (h *Host) LiveDataStores() int {
	return live(h.stores, func(r *storeRec) bool { return r.Freed })
}

type storeHost struct{ h *Host }

func (a *storeHost) Create() numlink.DataStore {
	ds := numlink.DataStore(a.h.handle())
	a.h.stores[ds] = &storeRec{}
	return ds
}

func (a *storeHost) Copy(ds numlink.DataStore) (numlink.DataStore, error) {
	if err := a.h.failing("store.copy"); err != nil {
		return 0, err
	}
	r := a.h.store(ds)
	if r == nil {
		return 0, errBadHandle
	}
	out := a.Create()
	for n := r.first; n != 0; n = a.h.nodes[n].next {
		rec := a.h.nodes[n]
		if err := a.Add(out, rec.name, rec.value); err != nil {
			return 0, err
		}
	}
	return out, nil
}

func (a *storeHost) Free(ds numlink.DataStore) {
	if r, ok := a.h.stores[ds]; ok {
		r.Frees++
		r.Freed = true
	}
}

func (a *storeHost) Length(ds numlink.DataStore) int {
	if r := a.h.store(ds); r != nil {
		return r.length
	}
	return 0
}

func (a *storeHost) First(ds numlink.DataStore) numlink.DataStoreNode {
	if r := a.h.store(ds); r != nil {
		return r.first
	}
	return 0
}

func (a *storeHost) Next(n numlink.DataStoreNode) numlink.DataStoreNode {
	if r, ok := a.h.nodes[n]; ok {
		return r.next
	}
	return 0
}

func (a *storeHost) NodeName(n numlink.DataStoreNode) string {
	if r, ok := a.h.nodes[n]; ok {
		return r.name
	}
	return ""
}

func (a *storeHost) NodeValue(n numlink.DataStoreNode) (any, error) {
	if err := a.h.failing("store.nodevalue"); err != nil {
		return nil, err
	}
	if r, ok := a.h.nodes[n]; ok {
		return r.value, nil
	}
	return nil, errBadHandle
}

func (a *storeHost) Add(ds numlink.DataStore, name string, value any) error {
	if err := a.h.failing("store.add"); err != nil {
		return err
	}
	r := a.h.store(ds)
	if r == nil {
		return errBadHandle
	}
	switch value.(type) {
	case bool, int64, float64, complex128, string,
		numlink.MTensor, numlink.MImage, numlink.MNumericArray, numlink.DataStore:
	default:
		return fmt.Errorf("hosttest: unsupported node value %T", value)
	}
	hn := numlink.DataStoreNode(a.h.handle())
	a.h.nodes[hn] = &nodeRec{name: name, value: value}
	if r.first == 0 {
		r.first = hn
	} else {
		a.h.nodes[r.last].next = hn
	}
	r.last = hn
	r.length++
	return nil
}

// --- helpers ---

func flatLen(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

func cloneData(data any) any {
	switch d := data.(type) {
	case []int8:
		return append([]int8(nil), d...)
	case []uint8:
		return append([]uint8(nil), d...)
	case []int16:
		return append([]int16(nil), d...)
	case []uint16:
		return append([]uint16(nil), d...)
	case []int32:
		return append([]int32(nil), d...)
	case []uint32:
		return append([]uint32(nil), d...)
	case []int64:
		return append([]int64(nil), d...)
	case []uint64:
		return append([]uint64(nil), d...)
	case []float32:
		return append([]float32(nil), d...)
	case []float64:
		return append([]float64(nil), d...)
	case []complex64:
		return append([]complex64(nil), d...)
	case []complex128:
		return append([]complex128(nil), d...)
	}
	return nil
}

// convertNumeric element-converts src into dst through float64, which is
// what the real host's widening conversions amount to for test data.
func convertNumeric(dst, src any) {
	get := func(i int) float64 {
		switch s := src.(type) {
		case []int8:
			return float64(s[i])
		case []uint8:
			return float64(s[i])
		case []int16:
			return float64(s[i])
		case []uint16:
			return float64(s[i])
		case []int32:
			return float64(s[i])
		case []uint32:
			return float64(s[i])
		case []int64:
			return float64(s[i])
		case []uint64:
			return float64(s[i])
		case []float32:
			return float64(s[i])
		case []float64:
			return s[i]
		}
		return 0
	}
	n := dataLen(src)
	for i := 0; i < n && i < dataLen(dst); i++ {
		v := get(i)
		switch d := dst.(type) {
		case []int8:
			d[i] = int8(v)
		case []uint8:
			d[i] = uint8(v)
		case []int16:
			d[i] = int16(v)
		case []uint16:
			d[i] = uint16(v)
		case []int32:
			d[i] = int32(v)
		case []uint32:
			d[i] = uint32(v)
		case []int64:
			d[i] = int64(v)
		case []uint64:
			d[i] = uint64(v)
		case []float32:
			d[i] = float32(v)
		case []float64:
			d[i] = v
		}
	}
}

func dataLen(data any) int {
	switch d := data.(type) {
	case []int8:
		return len(d)
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	case []complex64:
		return len(d)
	case []complex128:
		return len(d)
	}
	return 0
}
