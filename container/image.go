package container

import (
	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// GenericImage wraps a host image handle with a passing mode.
type GenericImage struct {
	ld   *numlink.LibraryData
	raw  numlink.MImage
	life lifecycle
}

// NewImage2D allocates a fresh single-frame host image in Manual mode.
func NewImage2D(ld *numlink.LibraryData, width, height, channels int, t numlink.ImageType, cs numlink.ColorSpace, interleaved bool) (*GenericImage, error) {
	raw, err := ld.Image.New2D(width, height, channels, t, cs, interleaved)
	if err != nil {
		return nil, errman.Named(errman.ImageNewError).WithDebug("%dx%d, %d channels, type %d: %v", width, height, channels, t, err)
	}
	return &GenericImage{ld: ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// NewImage3D allocates a fresh multi-frame host image in Manual mode.
func NewImage3D(ld *numlink.LibraryData, slices, width, height, channels int, t numlink.ImageType, cs numlink.ColorSpace, interleaved bool) (*GenericImage, error) {
	raw, err := ld.Image.New3D(slices, width, height, channels, t, cs, interleaved)
	if err != nil {
		return nil, errman.Named(errman.ImageNewError).WithDebug("%d slices %dx%d, %d channels, type %d: %v", slices, width, height, channels, t, err)
	}
	return &GenericImage{ld: ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// AdoptImage wraps an existing host handle under the given mode.
func AdoptImage(ld *numlink.LibraryData, raw numlink.MImage, mode Passing) (*GenericImage, error) {
	if raw == 0 {
		return nil, errman.Named(errman.ArgumentCreateNull)
	}
	return &GenericImage{ld: ld, raw: raw, life: lifecycleFor(mode)}, nil
}

// Raw returns the wrapped handle without affecting ownership.
func (im *GenericImage) Raw() numlink.MImage { return im.raw }

// Mode returns the wrapper's passing mode.
func (im *GenericImage) Mode() Passing { return im.life.mode }

// Drop releases the handle according to the passing mode.
func (im *GenericImage) Drop() {
	im.life.drop(
		func() { im.ld.Image.Free(im.raw) },
		func() { im.ld.Image.Disown(im.raw) },
	)
}

// Release moves the handle out of the wrapper, leaving it inert.
func (im *GenericImage) Release() numlink.MImage {
	raw := im.raw
	im.raw = 0
	im.life.abandon()
	return raw
}

// Clone deep-copies the underlying pixels into a fresh Manual wrapper.
func (im *GenericImage) Clone() (*GenericImage, error) {
	raw, err := im.ld.Image.Clone(im.raw)
	if err != nil {
		return nil, errman.Named(errman.ImageCloneError).WithDebug("%v", err)
	}
	return &GenericImage{ld: im.ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// Convert builds a wrapper of another passing mode; see GenericTensor.Convert.
func (im *GenericImage) Convert(mode Passing) (*GenericImage, error) {
	if mode == im.life.mode && mode != Manual {
		if mode == Shared {
			im.ld.Image.Share(im.raw)
		}
		return &GenericImage{ld: im.ld, raw: im.raw, life: lifecycleFor(mode)}, nil
	}
	c, err := im.Clone()
	if err != nil {
		return nil, err
	}
	c.life = lifecycleFor(mode)
	return c, nil
}

// ConvertType asks the host for a copy with a different pixel type or
// interleaving. The result is a fresh Manual wrapper.
func (im *GenericImage) ConvertType(t numlink.ImageType, interleaved bool) (*GenericImage, error) {
	raw, err := im.ld.Image.ConvertType(im.raw, t, interleaved)
	if err != nil {
		return nil, errman.Named(errman.ImageNewError).WithDebug("conversion to type %d: %v", t, err)
	}
	return &GenericImage{ld: im.ld, raw: raw, life: lifecycleFor(Manual)}, nil
}

// ShareCount reports the host's reference count for the handle.
func (im *GenericImage) ShareCount() int { return im.ld.Image.ShareCount(im.raw) }

// Pass stores the handle in the host's result slot; Manual wrappers abandon
// ownership.
func (im *GenericImage) Pass(res *numlink.Argument) {
	res.Value = im.raw
	if im.life.mode == Manual {
		im.life.abandon()
	}
}

func (im *GenericImage) Rank() int                      { return im.ld.Image.Rank(im.raw) }
func (im *GenericImage) Rows() int                      { return im.ld.Image.Rows(im.raw) }
func (im *GenericImage) Columns() int                   { return im.ld.Image.Columns(im.raw) }
func (im *GenericImage) Slices() int                    { return im.ld.Image.Slices(im.raw) }
func (im *GenericImage) Channels() int                  { return im.ld.Image.Channels(im.raw) }
func (im *GenericImage) ColorSpace() numlink.ColorSpace { return im.ld.Image.ColorSpace(im.raw) }
func (im *GenericImage) InterleavedQ() bool             { return im.ld.Image.InterleavedQ(im.raw) }
func (im *GenericImage) AlphaChannelQ() bool            { return im.ld.Image.AlphaChannelQ(im.raw) }
func (im *GenericImage) Type() numlink.ImageType        { return im.ld.Image.Type(im.raw) }
func (im *GenericImage) FlattenedLength() int           { return im.ld.Image.FlattenedLength(im.raw) }
