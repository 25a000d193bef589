package compositor

import (
	"image"
	"math"
)

const (
	// backgroundScale oversizes the background so the crop always covers the canvas
	backgroundScale = 1.2
	// foregroundScale leaves a margin around the photo
	foregroundScale = 0.95
	// maxBackgroundArea caps the scaled background at this many canvases;
	// beyond it only the cropped region of the photo is resized
	maxBackgroundArea = 8
)

// layer is the size of a resized photo and where it sits relative to the canvas
type layer struct {
	Width  int
	Height int
	Left   int
	Top    int
}

func ratios(photoW, photoH, canvasW, canvasH int) (float64, float64) {
	return float64(canvasW) / float64(photoW), float64(canvasH) / float64(photoH)
}

// backgroundGeometry sizes the photo to cover the canvas with room to spare.
// Left/Top are the crop offsets into the scaled photo.
func backgroundGeometry(photoW, photoH, canvasW, canvasH int) layer {
	wratio, hratio := ratios(photoW, photoH, canvasW, canvasH)
	ratio := max(wratio, hratio) * backgroundScale

	w := int(float64(photoW) * ratio)
	h := int(float64(photoH) * ratio)
	return layer{
		Width:  w,
		Height: h,
		Left:   (w - canvasW) / 2,
		Top:    (h - canvasH) / 2,
	}
}

// fitsBackground reports whether the full scaled background stays within
// maxBackgroundArea canvases
func fitsBackground(bg layer, canvasW, canvasH int) bool {
	return int64(bg.Width)*int64(bg.Height) <= maxBackgroundArea*int64(canvasW)*int64(canvasH)
}

// backgroundSource maps the canvas crop of the scaled background back onto
// the photo. Resizing that region straight to the canvas size gives the same
// background without materializing the scaled photo.
func backgroundSource(bg layer, photoW, photoH, canvasW, canvasH int) image.Rectangle {
	sx := float64(photoW) / float64(bg.Width)
	sy := float64(photoH) / float64(bg.Height)

	r := image.Rect(
		int(math.Round(float64(bg.Left)*sx)),
		int(math.Round(float64(bg.Top)*sy)),
		int(math.Round(float64(bg.Left+canvasW)*sx)),
		int(math.Round(float64(bg.Top+canvasH)*sy)),
	)
	// At least one source pixel per axis
	if r.Dx() == 0 {
		if r.Max.X < photoW {
			r.Max.X++
		} else {
			r.Min.X--
		}
	}
	if r.Dy() == 0 {
		if r.Max.Y < photoH {
			r.Max.Y++
		} else {
			r.Min.Y--
		}
	}
	return r.Intersect(image.Rect(0, 0, photoW, photoH))
}

// foregroundGeometry fits the photo inside the canvas and centers it.
// Left/Top are the paste offsets onto the canvas.
func foregroundGeometry(photoW, photoH, canvasW, canvasH int) layer {
	wratio, hratio := ratios(photoW, photoH, canvasW, canvasH)
	ratio := min(wratio, hratio) * foregroundScale

	// imaging.Resize treats 0 as "keep aspect ratio", never let it through
	w := max(1, int(float64(photoW)*ratio))
	h := max(1, int(float64(photoH)*ratio))
	return layer{
		Width:  w,
		Height: h,
		Left:   (canvasW - w) / 2,
		Top:    (canvasH - h) / 2,
	}
}
