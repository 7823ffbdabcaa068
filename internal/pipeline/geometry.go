package pipeline

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pixelvault/pixelvault/internal/domain/transform"
)

func cropStage(img image.Image, op transform.Crop) (image.Image, error) {
	bounds := img.Bounds()
	if op.X+op.Width > bounds.Dx() || op.Y+op.Height > bounds.Dy() {
		return nil, stageError("crop", "crop out of bounds: %dx%d at (%d,%d) exceeds source %dx%d",
			op.Width, op.Height, op.X, op.Y, bounds.Dx(), bounds.Dy())
	}
	return imaging.Crop(img, image.Rect(op.X, op.Y, op.X+op.Width, op.Y+op.Height)), nil
}

func resizeStage(img image.Image, op transform.Resize) image.Image {
	switch op.Fit {
	case "cover":
		// Scale to fill the box, center-cropping overflow.
		return imaging.Fill(img, op.Width, op.Height, imaging.Center, imaging.Lanczos)
	case "fill":
		// Stretch to exact dimensions, ignoring aspect ratio.
		return imaging.Resize(img, op.Width, op.Height, imaging.Lanczos)
	case "contain":
		// Scale to fit within the box, then pad to exact dimensions.
		fitted := scaleToFit(img, op.Width, op.Height)
		return imaging.PasteCenter(imaging.New(op.Width, op.Height, color.White), fitted)
	case "inside":
		// Largest size with both dimensions within the box.
		return scaleToFit(img, op.Width, op.Height)
	case "outside":
		// Smallest size with both dimensions covering the box.
		return scaleToCover(img, op.Width, op.Height)
	}
	return img
}

func scaleToFit(img image.Image, targetW, targetH int) image.Image {
	scaleW, scaleH := scaleFactors(img, targetW, targetH)
	scale := scaleW
	if scaleH < scaleW {
		scale = scaleH
	}
	w, h := scaledSize(img, scale)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

func scaleToCover(img image.Image, targetW, targetH int) image.Image {
	scaleW, scaleH := scaleFactors(img, targetW, targetH)
	scale := scaleW
	if scaleH > scaleW {
		scale = scaleH
	}
	w, h := scaledSize(img, scale)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

func scaleFactors(img image.Image, targetW, targetH int) (float64, float64) {
	bounds := img.Bounds()
	return float64(targetW) / float64(bounds.Dx()), float64(targetH) / float64(bounds.Dy())
}

func scaledSize(img image.Image, scale float64) (int, int) {
	bounds := img.Bounds()
	w := int(float64(bounds.Dx())*scale + 0.5)
	h := int(float64(bounds.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func rotateStage(img image.Image, degrees int) image.Image {
	d := ((degrees % 360) + 360) % 360
	switch d {
	case 0:
		return img
	case 90:
		// imaging rotates counter-clockwise; spec degrees are clockwise.
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}
	// Arbitrary angles expand the canvas so no content is clipped.
	return imaging.Rotate(img, -float64(d), color.Transparent)
}
