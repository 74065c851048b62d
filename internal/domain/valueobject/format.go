package valueobject

import (
	"fmt"
	"strings"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
)

// Format is the closed set of raster formats the transformer can read.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatGIF
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	case FormatBMP:
		return ".bmp"
	default:
		return ""
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat maps a decoder name as reported by image.DecodeConfig.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
	}
}

func FormatFromContentType(contentType string) (Format, error) {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	switch mediaType {
	case "image/jpeg", "image/jpg", "image/pjpeg":
		return FormatJPEG, nil
	case "image/png":
		return FormatPNG, nil
	case "image/gif":
		return FormatGIF, nil
	case "image/bmp", "image/x-ms-bmp":
		return FormatBMP, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, contentType)
	}
}
