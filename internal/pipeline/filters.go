package pipeline

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

// Sepia tint color applied after the saturation/brightness adjustment.
const (
	sepiaTintR = 112
	sepiaTintG = 66
	sepiaTintB = 20
)

func filterStage(img image.Image, filters transform.Filters) image.Image {
	out := img
	if filters.Grayscale {
		out = imaging.Grayscale(out)
	}
	if filters.Sepia {
		out = sepia(out)
	}
	return out
}

// sepia halves saturation, lifts brightness by 5%, then multiplies the
// channels against the tint color normalized to its dominant channel.
func sepia(img image.Image) *image.NRGBA {
	adjusted := imaging.AdjustBrightness(imaging.AdjustSaturation(img, -50), 5)
	return imaging.AdjustFunc(adjusted, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: c.R,
			G: uint8(float64(c.G) * sepiaTintG / sepiaTintR),
			B: uint8(float64(c.B) * sepiaTintB / sepiaTintR),
			A: c.A,
		}
	})
}
