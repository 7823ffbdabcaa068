package pipeline

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

// SniffFormat inspects raw bytes and returns the detected image format:
// "jpeg", "png", "webp", "avif", or "" if unrecognized.
func SniffFormat(data []byte) string {
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "jpeg"
	}
	if len(data) >= 8 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A {
		return "png"
	}
	// WebP: RIFF....WEBP
	if len(data) >= 12 && data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P' {
		return "webp"
	}
	// AVIF: ISO BMFF with an avif/avis major brand.
	if len(data) >= 12 && data[4] == 'f' && data[5] == 't' && data[6] == 'y' && data[7] == 'p' {
		brand := string(data[8:12])
		if brand == "avif" || brand == "avis" {
			return "avif"
		}
	}
	return ""
}

// ContentType maps an output format to its MIME type.
func ContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "avif":
		return "image/avif"
	}
	return "application/octet-stream"
}

// Probe decodes raw bytes just far enough to report format and pixel
// dimensions. Used when registering an uploaded original.
func Probe(data []byte) (string, int, int, error) {
	img, format, err := decode(data)
	if err != nil {
		return "", 0, 0, err
	}
	bounds := img.Bounds()
	return format, bounds.Dx(), bounds.Dy(), nil
}

func decode(data []byte) (image.Image, string, error) {
	format := SniffFormat(data)

	var (
		img image.Image
		err error
	)
	switch format {
	case "jpeg", "png":
		img, _, err = image.Decode(bytes.NewReader(data))
	case "webp":
		img, err = webp.Decode(bytes.NewReader(data))
	case "avif":
		img, err = avif.Decode(bytes.NewReader(data))
	default:
		return nil, "", stageError("decode", "unsupported or unrecognized source format")
	}
	if err != nil {
		return nil, "", stageError("decode", "decoding %s source: %v", format, err)
	}
	return img, format, nil
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case "png":
		// PNG is lossless; the quality knob maps to maximum compression.
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, img)
	case "webp":
		err = webp.Encode(&buf, img, webp.Options{Quality: quality})
	case "avif":
		err = avif.Encode(&buf, img, avif.Options{Quality: quality})
	default:
		return nil, stageError("encode", "unsupported output format %q", format)
	}
	if err != nil {
		return nil, stageError("encode", "encoding %s: %v", format, err)
	}
	return buf.Bytes(), nil
}

func clampQuality(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}
