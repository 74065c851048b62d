package imageproc

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	// Registered so WebP input is recognised and rejected as unsupported
	// instead of failing as unreadable bytes.
	_ "golang.org/x/image/webp"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/domain/valueobject"
)

const (
	maxJPEGQuality = 100
	maxGIFColors   = 256
	minGIFColors   = 2
)

type codec struct {
	decode func(io.Reader) (image.Image, error)
	encode func(io.Writer, image.Image, ...imaging.EncodeOption) error
}

func imagingEncoder(format imaging.Format) func(io.Writer, image.Image, ...imaging.EncodeOption) error {
	return func(w io.Writer, img image.Image, opts ...imaging.EncodeOption) error {
		return imaging.Encode(w, img, format, opts...)
	}
}

var codecs = map[valueobject.Format]codec{
	valueobject.FormatJPEG: {decode: jpeg.Decode, encode: imagingEncoder(imaging.JPEG)},
	valueobject.FormatPNG:  {decode: png.Decode, encode: imagingEncoder(imaging.PNG)},
	valueobject.FormatGIF:  {decode: gif.Decode, encode: imagingEncoder(imaging.GIF)},
	valueobject.FormatBMP:  {decode: bmp.Decode, encode: imagingEncoder(imaging.BMP)},
}

// maxQualityOptions returns the encoder settings used when a transform must not lose detail.
func maxQualityOptions(format valueobject.Format) []imaging.EncodeOption {
	switch format {
	case valueobject.FormatJPEG:
		return []imaging.EncodeOption{imaging.JPEGQuality(maxJPEGQuality)}
	case valueobject.FormatPNG:
		return []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestCompression)}
	case valueobject.FormatGIF:
		return []imaging.EncodeOption{imaging.GIFNumColors(maxGIFColors)}
	default:
		return nil
	}
}

func compressOptions(format valueobject.Format, quality int) ([]imaging.EncodeOption, error) {
	switch format {
	case valueobject.FormatJPEG:
		return []imaging.EncodeOption{imaging.JPEGQuality(quality)}, nil
	case valueobject.FormatPNG:
		return []imaging.EncodeOption{imaging.PNGCompressionLevel(pngEncoderLevel(PNGCompressionLevel(quality)))}, nil
	case valueobject.FormatGIF:
		colors := minGIFColors + quality*(maxGIFColors-minGIFColors)/100
		return []imaging.EncodeOption{imaging.GIFNumColors(colors)}, nil
	default:
		return nil, fmt.Errorf("%w: cannot compress %s", domain.ErrUnsupportedFormat, format)
	}
}

// PNGCompressionLevel converts a 0-100 lossy quality into a 0-9 zlib level,
// where quality 100 means no compression and quality 0 means maximum.
func PNGCompressionLevel(quality int) int {
	return int(math.Round(math.Abs(float64(quality-100) / 11.111111)))
}

// pngEncoderLevel folds a 0-9 level onto the four levels image/png exposes.
func pngEncoderLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

func readAsset(r io.Reader, path string) (valueobject.Asset, error) {
	cfg, name, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return valueobject.Asset{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
		}
		return valueobject.Asset{}, &domain.DecodeError{Path: path, Err: err}
	}

	format, err := valueobject.ParseFormat(name)
	if err != nil {
		return valueobject.Asset{}, err
	}

	dims, err := valueobject.NewDimensions(cfg.Width, cfg.Height)
	if err != nil {
		return valueobject.Asset{}, &domain.DecodeError{Path: path, Err: err}
	}

	return valueobject.NewAsset(path, format, dims), nil
}

// decodeFile reads path with the codec for its detected format. Only formats in
// allowed are decoded.
func decodeFile(path string, allowed ...valueobject.Format) (image.Image, valueobject.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, valueobject.Asset{}, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	asset, err := readAsset(f, path)
	if err != nil {
		return nil, valueobject.Asset{}, err
	}

	if !isAllowed(asset.Format, allowed) {
		return nil, valueobject.Asset{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, asset.Format)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, valueobject.Asset{}, fmt.Errorf("rewinding source: %w", err)
	}

	img, err := codecs[asset.Format].decode(f)
	if err != nil {
		return nil, valueobject.Asset{}, &domain.DecodeError{Path: path, Err: err}
	}

	return img, asset, nil
}

// encodeFile writes img to path. A partially written file is removed on failure.
func encodeFile(path string, img image.Image, format valueobject.Format, opts ...imaging.EncodeOption) (err error) {
	c, ok := codecs[format]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return &domain.EncodeError{Path: path, Format: format.String(), Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &domain.EncodeError{Path: path, Format: format.String(), Err: cerr}
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := c.encode(f, img, opts...); err != nil {
		return &domain.EncodeError{Path: path, Format: format.String(), Err: err}
	}

	return nil
}

func isAllowed(format valueobject.Format, allowed []valueobject.Format) bool {
	for _, f := range allowed {
		if f == format {
			return true
		}
	}
	return false
}
