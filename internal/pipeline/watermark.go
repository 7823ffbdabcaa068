package pipeline

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// TextStyle carries the rendering parameters for a watermark overlay.
type TextStyle struct {
	FontSize int
	Opacity  int // percent, 10-100
}

// TextRenderer rasterizes watermark text into a transparent overlay that
// the pipeline composites onto the encoded output. Kept behind an
// interface so the rasterizer can be swapped without touching the
// geometric stages.
type TextRenderer interface {
	Render(text string, box image.Rectangle, style TextStyle) (image.Image, error)
}

// FreetypeRenderer draws text with the embedded Go Regular typeface.
type FreetypeRenderer struct {
	font *truetype.Font
}

func NewFreetypeRenderer() (*FreetypeRenderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, stageError("watermark", "parsing embedded font: %v", err)
	}
	return &FreetypeRenderer{font: f}, nil
}

func (r *FreetypeRenderer) Render(text string, box image.Rectangle, style TextStyle) (image.Image, error) {
	overlay := image.NewRGBA(box)

	alpha := uint8(style.Opacity * 255 / 100)
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(r.font)
	c.SetFontSize(float64(style.FontSize))
	c.SetClip(box)
	c.SetDst(overlay)
	c.SetSrc(image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: alpha}))
	c.SetHinting(font.HintingFull)

	if _, err := c.DrawString(text, freetype.Pt(box.Min.X, box.Min.Y+style.FontSize)); err != nil {
		return nil, stageError("watermark", "drawing text: %v", err)
	}
	return overlay, nil
}
