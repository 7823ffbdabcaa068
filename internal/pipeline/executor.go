package pipeline

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

// Watermark text is sized relative to the output image: the font never
// exceeds this share of the output height.
const maxWatermarkHeightRatio = 0.35

// Result is the output artifact of a pipeline run.
type Result struct {
	Data        []byte
	Width       int
	Height      int
	Format      string
	ContentType string
}

// Executor applies a validated transformation spec to source bytes. The
// stage order is fixed and independent of the order operations appear in
// the spec, because the operations do not commute:
//
//	decode -> crop -> resize -> rotate -> flip -> mirror -> filters ->
//	encode -> watermark (post-encode, re-encodes)
//
// Execution is deterministic: identical source bytes and spec always
// produce byte-equivalent output.
type Executor struct {
	renderer TextRenderer
}

func NewExecutor(renderer TextRenderer) *Executor {
	return &Executor{renderer: renderer}
}

func (e *Executor) Execute(src []byte, spec transform.Spec, fallbackFormat string) (*Result, error) {
	img, _, err := decode(src)
	if err != nil {
		return nil, err
	}

	if spec.Crop != nil {
		if img, err = cropStage(img, *spec.Crop); err != nil {
			return nil, err
		}
	}
	if spec.Resize != nil {
		img = resizeStage(img, *spec.Resize)
	}
	if spec.Rotate != nil {
		img = rotateStage(img, spec.Rotate.Degrees)
	}
	if spec.Flip != nil && *spec.Flip {
		img = imaging.FlipV(img)
	}
	if spec.Mirror != nil && *spec.Mirror {
		img = imaging.FlipH(img)
	}
	if spec.Filters != nil {
		img = filterStage(img, *spec.Filters)
	}

	format := spec.Format
	if format == "" {
		format = fallbackFormat
	}
	if !transform.IsSupportedFormat(format) {
		return nil, stageError("encode", "unsupported output format %q", format)
	}

	quality := transform.DefaultQuality
	if spec.Compress != nil {
		quality = spec.Compress.Quality
	}
	quality = clampQuality(quality)

	data, err := encode(img, format, quality)
	if err != nil {
		return nil, err
	}

	if spec.Watermark != nil {
		if data, err = e.watermarkStage(data, format, quality, *spec.Watermark); err != nil {
			return nil, err
		}
	}

	bounds := img.Bounds()
	return &Result{
		Data:        data,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Format:      format,
		ContentType: ContentType(format),
	}, nil
}

// watermarkStage composites a semi-transparent text overlay onto the
// already-encoded output and re-encodes it with the same format and
// quality.
func (e *Executor) watermarkStage(encoded []byte, format string, quality int, op transform.Watermark) ([]byte, error) {
	img, _, err := decode(encoded)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	fontSize := op.FontSize
	if limit := int(float64(height) * maxWatermarkHeightRatio); fontSize > limit {
		fontSize = limit
	}
	if fontSize < 1 {
		fontSize = 1
	}

	// Box width estimated from character count; bounded by the output.
	boxW := int(float64(len(op.Text)) * float64(fontSize) * 0.6)
	if boxW > width {
		boxW = width
	}
	boxH := int(float64(fontSize) * 1.4)
	if boxH > height {
		boxH = height
	}

	overlay, err := e.renderer.Render(op.Text, image.Rect(0, 0, boxW, boxH), TextStyle{
		FontSize: fontSize,
		Opacity:  op.Opacity,
	})
	if err != nil {
		return nil, err
	}

	composited := imaging.Overlay(img, overlay, anchorOffset(op.Position, width, height, boxW, boxH), 1.0)
	return encode(composited, format, quality)
}

func anchorOffset(position string, width, height, boxW, boxH int) image.Point {
	const margin = 16

	var x int
	switch position {
	case "northwest", "west", "southwest":
		x = margin
	case "northeast", "east", "southeast":
		x = width - boxW - margin
	default: // north, center, south
		x = (width - boxW) / 2
	}

	var y int
	switch position {
	case "northwest", "north", "northeast":
		y = margin
	case "southwest", "south", "southeast":
		y = height - boxH - margin
	default: // west, center, east
		y = (height - boxH) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return image.Pt(x, y)
}
