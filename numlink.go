package numlink

// Opaque handles issued by the host. The zero value is the null handle.
// Handle identity is the handle value itself: two wrappers may alias the
// same handle, which is exactly what Shared passing models.
type (
	// MTensor references a host tensor of machine integers, reals or complexes.
	MTensor uintptr
	// MImage references a host 2D or 3D image.
	MImage uintptr
	// MNumericArray references a host multi-dimensional numeric buffer.
	MNumericArray uintptr
	// DataStore references a host record list: an ordered, optionally named,
	// type-heterogeneous sequence of nodes.
	DataStore uintptr
	// DataStoreNode references a single node inside a DataStore.
	DataStoreNode uintptr
	// Link references a sequential, bidirectional expression channel.
	Link uintptr
)

// TensorType enumerates tensor element categories, with the host's values.
type TensorType int

const (
	TensorInteger TensorType = 2
	TensorReal    TensorType = 3
	TensorComplex TensorType = 4
)

// NumericType enumerates numeric array element types, with the host's values.
type NumericType int

const (
	NumericInt8 NumericType = iota + 1
	NumericUint8
	NumericInt16
	NumericUint16
	NumericInt32
	NumericUint32
	NumericInt64
	NumericUint64
	NumericFloat32
	NumericFloat64
	NumericComplexFloat32
	NumericComplexFloat64
)

// ImageType enumerates image pixel types, with the host's values.
type ImageType int

const (
	ImageBit ImageType = iota + 1
	ImageBit8
	ImageBit16
	ImageReal32
	ImageReal64
)

// ColorSpace identifies how image channel values encode color.
type ColorSpace int

const (
	ColorSpaceAutomatic ColorSpace = iota
	ColorSpaceGray
	ColorSpaceRGB
	ColorSpaceCMYK
	ColorSpaceHSB
	ColorSpaceLAB
)

// TokenType classifies the next element readable from a link.
type TokenType int

const (
	TokenError TokenType = iota
	TokenInteger
	TokenReal
	TokenString
	TokenSymbol
	TokenFunction
)

// PacketType classifies a packet read from a link.
type PacketType int

const (
	PacketIllegal PacketType = iota
	PacketReturn
	PacketEvaluate
	PacketText
	PacketMessage
)

// Argument is one slot of the host's call-argument array, or the output slot.
// The host stores scalars, strings and raw handles in it.
type Argument struct {
	Value any
}

// TensorAPI is the host's tensor ABI. Consumed, never reimplemented.
type TensorAPI interface {
	New(t TensorType, dims []int) (MTensor, error)
	Clone(MTensor) (MTensor, error)
	Free(MTensor)
	Disown(MTensor)
	Share(MTensor)
	ShareCount(MTensor) int
	Rank(MTensor) int
	Dimensions(MTensor) []int
	Type(MTensor) TensorType
	FlattenedLength(MTensor) int
	// Data returns the host's backing element buffer ([]int64, []float64 or
	// []complex128 depending on Type). Callers must not retain it past the
	// handle's lifetime.
	Data(MTensor) any
}

// ImageAPI is the host's image ABI.
type ImageAPI interface {
	New2D(width, height, channels int, t ImageType, cs ColorSpace, interleaved bool) (MImage, error)
	New3D(slices, width, height, channels int, t ImageType, cs ColorSpace, interleaved bool) (MImage, error)
	Clone(MImage) (MImage, error)
	Free(MImage)
	Disown(MImage)
	Share(MImage)
	ShareCount(MImage) int
	ConvertType(im MImage, t ImageType, interleaved bool) (MImage, error)
	ColorSpace(MImage) ColorSpace
	Rows(MImage) int
	Columns(MImage) int
	Slices(MImage) int
	Channels(MImage) int
	AlphaChannelQ(MImage) bool
	InterleavedQ(MImage) bool
	Rank(MImage) int
	Type(MImage) ImageType
	FlattenedLength(MImage) int
	Data(MImage) any
}

// NumericArrayAPI is the host's numeric array ABI.
type NumericArrayAPI interface {
	New(t NumericType, dims []int) (MNumericArray, error)
	Clone(MNumericArray) (MNumericArray, error)
	Free(MNumericArray)
	Disown(MNumericArray)
	Share(MNumericArray)
	ShareCount(MNumericArray) int
	Convert(na MNumericArray, t NumericType) (MNumericArray, error)
	Rank(MNumericArray) int
	Dimensions(MNumericArray) []int
	Type(MNumericArray) NumericType
	FlattenedLength(MNumericArray) int
	Data(MNumericArray) any
}

// DataStoreAPI is the host's record list ABI. DataStores cannot be shared.
type DataStoreAPI interface {
	Create() DataStore
	Copy(DataStore) (DataStore, error)
	Free(DataStore)
	Length(DataStore) int
	First(DataStore) DataStoreNode
	Next(DataStoreNode) DataStoreNode
	NodeName(DataStoreNode) string
	NodeValue(DataStoreNode) (any, error)
	// Add appends a node. An empty name adds a nameless node. The host
	// accepts bools, machine integers, reals, complexes, strings and raw
	// container handles as node values.
	Add(ds DataStore, name string, value any) error
}

// LinkAPI is the host's expression link ABI. Strings travel in one of several
// wire encodings, each with its own put/get/release entry points; buffers
// returned by Get* calls are host-allocated and must be handed back through
// ReleaseString once converted.
type LinkAPI interface {
	NewLoopback() (Link, error)
	Close(Link)

	PutInteger(Link, int64) error
	PutReal(Link, float64) error
	PutSymbol(Link, string) error
	PutFunction(l Link, head string, nargs int) error
	PutString(Link, string) error
	PutByteString(Link, []byte) error
	PutUTF8String(Link, []byte) error
	PutUTF16String(Link, []uint16) error
	PutUCS2String(Link, []uint16) error
	PutUTF32String(Link, []uint32) error

	GetInteger(Link) (int64, error)
	GetReal(Link) (float64, error)
	GetSymbol(Link) (string, error)
	GetFunction(Link) (head string, nargs int, err error)
	GetString(Link) (string, error)
	GetByteString(l Link, substitute byte) ([]byte, error)
	GetUTF8String(Link) ([]byte, error)
	GetUTF16String(Link) ([]uint16, error)
	GetUCS2String(Link) ([]uint16, error)
	GetUTF32String(Link) ([]uint32, error)
	ReleaseString(l Link, buf any)

	// GetType reports the class of the next readable element without
	// consuming it.
	GetType(Link) (TokenType, error)
	// TransferExpression moves one complete expression from src to dst.
	TransferExpression(dst, src Link) error

	NewPacket(Link) error
	NextPacket(Link) (PacketType, error)
	EndPacket(Link) error
	Flush(Link) error
}

// LibraryData bundles everything the host hands to an extension entry point.
// There is no global accessor: callers thread it explicitly through
// wrappers, streams and the argument manager.
type LibraryData struct {
	Tensor       TensorAPI
	Image        ImageAPI
	NumericArray NumericArrayAPI
	DataStore    DataStoreAPI
	Link         LinkAPI

	// EvalLink is the channel to the host's evaluator, used to ship failure
	// parameters before an error is surfaced.
	EvalLink Link
	// ProcessEval hands a fully written expression on EvalLink to the
	// evaluator.
	ProcessEval func(Link) error
	// AbortQ reports whether the user has requested cancellation.
	AbortQ func() bool
}

// Valid reports whether all per-kind APIs are present.
func (ld *LibraryData) Valid() bool {
	return ld != nil && ld.Tensor != nil && ld.Image != nil &&
		ld.NumericArray != nil && ld.DataStore != nil && ld.Link != nil
}
