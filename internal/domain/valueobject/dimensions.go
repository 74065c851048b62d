package valueobject

import (
	"fmt"
	"math"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
)

const MaxDimension = 16384

type Dimensions struct {
	Width  int
	Height int
}

func NewDimensions(width, height int) (Dimensions, error) {
	d := Dimensions{Width: width, Height: height}
	if !d.IsValid() {
		return Dimensions{}, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, width, height)
	}
	return d, nil
}

func (d Dimensions) IsValid() bool {
	return d.Width > 0 && d.Height > 0 &&
		d.Width <= MaxDimension && d.Height <= MaxDimension
}

func (d Dimensions) AspectRatio() float64 {
	if d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// FitWithin scales d to the requested box keeping its aspect ratio. A zero
// width or height means that side is derived from the other one.
func (d Dimensions) FitWithin(width, height int) (Dimensions, error) {
	if !d.IsValid() {
		return Dimensions{}, fmt.Errorf("%w: source %s", domain.ErrInvalidDimensions, d)
	}
	if width < 0 || height < 0 || width > MaxDimension || height > MaxDimension {
		return Dimensions{}, fmt.Errorf("%w: target %dx%d", domain.ErrInvalidDimensions, width, height)
	}

	aspect := d.AspectRatio()

	var w, h float64
	switch {
	case width > 0 && height > 0:
		if float64(width)/float64(height) > aspect {
			w = float64(height) * aspect
			h = float64(height)
		} else {
			w = float64(width)
			h = float64(width) / aspect
		}
	case width > 0:
		w = float64(width)
		h = float64(width) / aspect
	case height > 0:
		w = float64(height) * aspect
		h = float64(height)
	default:
		return Dimensions{}, fmt.Errorf("%w: width or height required", domain.ErrInvalidDimensions)
	}

	return NewDimensions(roundSide(w), roundSide(h))
}

func roundSide(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
