package imageproc

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/domain/valueobject"
)

var (
	resizableFormats   = []valueobject.Format{valueobject.FormatJPEG, valueobject.FormatPNG, valueobject.FormatGIF}
	convertibleFormats = []valueobject.Format{valueobject.FormatJPEG, valueobject.FormatPNG, valueobject.FormatGIF, valueobject.FormatBMP}
)

// Transformer reads an image file, applies one transform and writes the result
// to a new file. It holds no state between calls.
type Transformer struct {
	shrinkFilter  imaging.ResampleFilter
	enlargeFilter imaging.ResampleFilter
}

func NewTransformer() *Transformer {
	return &Transformer{
		shrinkFilter:  imaging.Box,
		enlargeFilter: imaging.Linear,
	}
}

// Inspect reports the format and pixel dimensions of src without decoding pixel data.
func (t *Transformer) Inspect(src string) (valueobject.Asset, error) {
	f, err := os.Open(src)
	if err != nil {
		return valueobject.Asset{}, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	return readAsset(f, src)
}

// Resize scales src to exactly width x height and writes it to dst in the same format.
func (t *Transformer) Resize(src, dst string, width, height int) (valueobject.Asset, error) {
	target, err := valueobject.NewDimensions(width, height)
	if err != nil {
		return valueobject.Asset{}, err
	}
	return t.resizeTo(src, dst, func(valueobject.Dimensions) (valueobject.Dimensions, error) {
		return target, nil
	})
}

// ResizeMaintainAspectRatio scales src to fit inside width x height. Either side
// may be zero, in which case it is derived from the source aspect ratio.
func (t *Transformer) ResizeMaintainAspectRatio(src, dst string, width, height int) (valueobject.Asset, error) {
	if width <= 0 && height <= 0 {
		return valueobject.Asset{}, fmt.Errorf("%w: width or height required", domain.ErrInvalidDimensions)
	}
	return t.resizeTo(src, dst, func(source valueobject.Dimensions) (valueobject.Dimensions, error) {
		return source.FitWithin(width, height)
	})
}

func (t *Transformer) resizeTo(src, dst string, target func(valueobject.Dimensions) (valueobject.Dimensions, error)) (valueobject.Asset, error) {
	if err := checkPaths(src, dst); err != nil {
		return valueobject.Asset{}, err
	}

	img, asset, err := decodeFile(src, resizableFormats...)
	if err != nil {
		return valueobject.Asset{}, err
	}

	dims, err := target(asset.Dimensions)
	if err != nil {
		return valueobject.Asset{}, err
	}

	resized := imaging.Resize(img, dims.Width, dims.Height, t.filterFor(asset.Dimensions, dims))

	if err := encodeFile(dst, resized, asset.Format, maxQualityOptions(asset.Format)...); err != nil {
		return valueobject.Asset{}, err
	}

	return valueobject.NewAsset(dst, asset.Format, dims), nil
}

// Compress re-encodes src with the given 0-100 quality. JPEG uses it directly,
// PNG maps it to a zlib level and GIF to a palette size.
func (t *Transformer) Compress(src, dst string, quality int) (valueobject.Asset, error) {
	if err := checkPaths(src, dst); err != nil {
		return valueobject.Asset{}, err
	}

	if quality < 0 || quality > 100 {
		return valueobject.Asset{}, fmt.Errorf("%w: %d not in 0-100", domain.ErrInvalidQuality, quality)
	}

	img, asset, err := decodeFile(src, resizableFormats...)
	if err != nil {
		return valueobject.Asset{}, err
	}

	opts, err := compressOptions(asset.Format, quality)
	if err != nil {
		return valueobject.Asset{}, err
	}

	if err := encodeFile(dst, img, asset.Format, opts...); err != nil {
		return valueobject.Asset{}, err
	}

	return valueobject.NewAsset(dst, asset.Format, asset.Dimensions), nil
}

// ConvertToJPEG writes src as a maximum quality JPEG. Transparent pixels are
// composited onto white since JPEG has no alpha channel.
func (t *Transformer) ConvertToJPEG(src, dst string) (valueobject.Asset, error) {
	if err := checkPaths(src, dst); err != nil {
		return valueobject.Asset{}, err
	}

	img, asset, err := decodeFile(src, convertibleFormats...)
	if err != nil {
		return valueobject.Asset{}, err
	}

	flat := flatten(img, color.White)

	if err := encodeFile(dst, flat, valueobject.FormatJPEG, maxQualityOptions(valueobject.FormatJPEG)...); err != nil {
		return valueobject.Asset{}, err
	}

	return valueobject.NewAsset(dst, valueobject.FormatJPEG, asset.Dimensions), nil
}

func (t *Transformer) filterFor(from, to valueobject.Dimensions) imaging.ResampleFilter {
	if to.Width <= from.Width && to.Height <= from.Height {
		return t.shrinkFilter
	}
	return t.enlargeFilter
}

func flatten(img image.Image, background color.Color) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), background)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

func checkPaths(src, dst string) error {
	if src == "" || dst == "" {
		return domain.ErrSourceRequired
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return domain.ErrSameSourceAndDestination
	}
	return nil
}
