package container

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// TensorElement enumerates the element types a host tensor can hold.
type TensorElement interface {
	int64 | float64 | complex128
}

// NumericElement enumerates the element types a host numeric array can hold.
type NumericElement interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | complex64 | complex128
}

// Pixel enumerates the element types of typed image access. Bit-packed
// images have no typed view; convert them to Bit8 first.
type Pixel interface {
	uint8 | uint16 | float32 | float64
}

// Tensor is a typed view over a GenericTensor. The element type is checked
// against the host's report on first data access, not at construction.
type Tensor[T TensorElement] struct {
	*GenericTensor
	checked bool
}

// TensorOf wraps a generic tensor in a typed view.
func TensorOf[T TensorElement](g *GenericTensor) *Tensor[T] {
	return &Tensor[T]{GenericTensor: g}
}

func tensorTypeOf[T TensorElement]() numlink.TensorType {
	switch any(*new(T)).(type) {
	case int64:
		return numlink.TensorInteger
	case float64:
		return numlink.TensorReal
	default:
		return numlink.TensorComplex
	}
}

// Data returns the flattened element buffer, row-major. The buffer aliases
// host memory and must not outlive the wrapper.
func (t *Tensor[T]) Data() ([]T, error) {
	if !t.checked {
		if want, got := tensorTypeOf[T](), t.Type(); want != got {
			return nil, errman.Named(errman.TensorTypeError).WithDebug("view type %d, handle type %d", want, got)
		}
		t.checked = true
	}
	data, ok := t.ld.Tensor.Data(t.raw).([]T)
	if !ok {
		return nil, errman.Named(errman.TensorTypeError)
	}
	return data, nil
}

// At returns the i-th flattened element.
func (t *Tensor[T]) At(i int) (T, error) {
	data, err := t.Data()
	if err != nil {
		var zero T
		return zero, err
	}
	if i < 0 || i >= len(data) {
		var zero T
		return zero, errman.Named(errman.TensorIndexError).WithDebug("index %d, length %d", i, len(data))
	}
	return data[i], nil
}

// NumericArray is a typed view over a GenericNumericArray; same lazy check
// as Tensor.
type NumericArray[T NumericElement] struct {
	*GenericNumericArray
	checked bool
}

// NumericArrayOf wraps a generic numeric array in a typed view.
func NumericArrayOf[T NumericElement](g *GenericNumericArray) *NumericArray[T] {
	return &NumericArray[T]{GenericNumericArray: g}
}

func numericTypeOf[T NumericElement]() numlink.NumericType {
	switch any(*new(T)).(type) {
	case int8:
		return numlink.NumericInt8
	case uint8:
		return numlink.NumericUint8
	case int16:
		return numlink.NumericInt16
	case uint16:
		return numlink.NumericUint16
	case int32:
		return numlink.NumericInt32
	case uint32:
		return numlink.NumericUint32
	case int64:
		return numlink.NumericInt64
	case uint64:
		return numlink.NumericUint64
	case float32:
		return numlink.NumericFloat32
	case float64:
		return numlink.NumericFloat64
	case complex64:
		return numlink.NumericComplexFloat32
	default:
		return numlink.NumericComplexFloat64
	}
}

// Data returns the flattened element buffer, row-major.
func (n *NumericArray[T]) Data() ([]T, error) {
	if !n.checked {
		if want, got := numericTypeOf[T](), n.Type(); want != got {
			return nil, errman.Named(errman.NumericArrayTypeError).WithDebug("view type %d, handle type %d", want, got)
		}
		n.checked = true
	}
	data, ok := n.ld.NumericArray.Data(n.raw).([]T)
	if !ok {
		return nil, errman.Named(errman.NumericArrayTypeError)
	}
	return data, nil
}

// At returns the i-th flattened element.
func (n *NumericArray[T]) At(i int) (T, error) {
	data, err := n.Data()
	if err != nil {
		var zero T
		return zero, err
	}
	if i < 0 || i >= len(data) {
		var zero T
		return zero, errman.Named(errman.NumericArrayIndexError).WithDebug("index %d, length %d", i, len(data))
	}
	return data[i], nil
}

// Image is a typed view over a GenericImage; same lazy check as Tensor.
type Image[T Pixel] struct {
	*GenericImage
	checked bool
}

// ImageOf wraps a generic image in a typed view.
func ImageOf[T Pixel](g *GenericImage) *Image[T] {
	return &Image[T]{GenericImage: g}
}

func imageTypeOf[T Pixel]() numlink.ImageType {
	switch any(*new(T)).(type) {
	case uint8:
		return numlink.ImageBit8
	case uint16:
		return numlink.ImageBit16
	case float32:
		return numlink.ImageReal32
	default:
		return numlink.ImageReal64
	}
}

// Data returns the flattened pixel buffer in the handle's channel layout.
func (im *Image[T]) Data() ([]T, error) {
	if !im.checked {
		if want, got := imageTypeOf[T](), im.Type(); want != got {
			return nil, errman.Named(errman.ImageTypeError).WithDebug("view type %d, handle type %d", want, got)
		}
		im.checked = true
	}
	data, ok := im.ld.Image.Data(im.raw).([]T)
	if !ok {
		return nil, errman.Named(errman.ImageTypeError)
	}
	return data, nil
}

// At returns the i-th flattened pixel sample.
func (im *Image[T]) At(i int) (T, error) {
	data, err := im.Data()
	if err != nil {
		var zero T
		return zero, err
	}
	if i < 0 || i >= len(data) {
		var zero T
		return zero, errman.Named(errman.ImageIndexError).WithDebug("index %d, length %d", i, len(data))
	}
	return data[i], nil
}
