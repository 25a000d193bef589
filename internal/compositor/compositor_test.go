package compositor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genricoloni/photoshow/internal/config"
	"github.com/genricoloni/photoshow/internal/domain"
	"github.com/genricoloni/photoshow/internal/loader"
	"github.com/genricoloni/photoshow/internal/metadata/exiftest"
	"go.uber.org/zap"
)

var red = color.RGBA{R: 255, G: 0, B: 0, A: 255}

func TestCompositor_Compose(t *testing.T) {
	tests := []struct {
		name          string
		imageData     []byte
		resolution    domain.ScreenResolution
		expectedError string
	}{
		{
			name:       "Success - Square Photo 1920x1080",
			imageData:  createTestJPEG(100, 100, red),
			resolution: domain.ScreenResolution{Width: 1920, Height: 1080},
		},
		{
			name:       "Success - Wide Photo 800x600",
			imageData:  createTestJPEG(300, 100, color.RGBA{G: 255, A: 255}),
			resolution: domain.ScreenResolution{Width: 800, Height: 600},
		},
		{
			name:       "Success - Tall Photo 1280x720",
			imageData:  createTestJPEG(90, 400, color.RGBA{B: 255, A: 255}),
			resolution: domain.ScreenResolution{Width: 1280, Height: 720},
		},
		{
			name:       "Edge Case - Very Small Image",
			imageData:  createTestJPEG(1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 255}),
			resolution: domain.ScreenResolution{Width: 640, Height: 480},
		},
		{
			name:       "Edge Case - Portrait Canvas",
			imageData:  createTestJPEG(160, 90, red),
			resolution: domain.ScreenResolution{Width: 600, Height: 1000},
		},
		{
			name:          "Error - Invalid Image Data",
			imageData:     []byte("not-an-image"),
			resolution:    domain.ScreenResolution{Width: 1920, Height: 1080},
			expectedError: "file is not an image",
		},
		{
			name:          "Error - Corrupted JPEG",
			imageData:     []byte{0xFF, 0xD8, 0xFF, 0x00, 0x00}, // Partial JPEG header
			resolution:    domain.ScreenResolution{Width: 1920, Height: 1080},
			expectedError: "failed to decode image",
		},
		{
			name:          "Error - Empty Canvas",
			imageData:     createTestJPEG(10, 10, red),
			resolution:    domain.ScreenResolution{Width: 0, Height: 1080},
			expectedError: "invalid canvas size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePhoto(t, t.TempDir(), "photo.jpg", tt.imageData)
			comp := newTestCompositor(&domain.SlideshowConfig{Captions: domain.CaptionNone})

			frame, err := comp.Compose(context.Background(), path, tt.resolution.Width, tt.resolution.Height)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				var imgErr *ImageError
				if !errors.As(err, &imgErr) || imgErr.Path != path {
					t.Errorf("expected ImageError for %s, got %T", path, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			bounds := frame.Bounds()
			if bounds.Dx() != tt.resolution.Width || bounds.Dy() != tt.resolution.Height {
				t.Errorf("expected %dx%d, got %dx%d", tt.resolution.Width, tt.resolution.Height, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

// A 200x100 red photo on a 400x400 canvas is placed at 10,105 (380x190)
// unrotated, or at 105,10 (190x380) once turned a quarter.
func TestCompositor_Compose_Orientation(t *testing.T) {
	insideWide := image.Pt(50, 200)
	insideTall := image.Pt(200, 30)

	tests := []struct {
		name        string
		orientation uint16
		redAt       image.Point
		bgAt        image.Point
	}{
		{"No Rotation", 1, insideWide, insideTall},
		{"Rotate 180 Keeps Layout", 3, insideWide, insideTall},
		{"Orientation 6 Swaps", 6, insideTall, insideWide},
		{"Orientation 8 Swaps", 8, insideTall, insideWide},
		{"Unknown Orientation Ignored", 5, insideWide, insideTall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := exiftest.JPEG(solid(200, 100, red), exiftest.Fields{Orientation: tt.orientation})
			path := writePhoto(t, t.TempDir(), "photo.jpg", data)
			comp := newTestCompositor(&domain.SlideshowConfig{Captions: domain.CaptionNone})

			frame, err := comp.Compose(context.Background(), path, 400, 400)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !isRed(frame.At(tt.redAt.X, tt.redAt.Y)) {
				t.Errorf("expected photo at %v, got %v", tt.redAt, frame.At(tt.redAt.X, tt.redAt.Y))
			}
			if isRed(frame.At(tt.bgAt.X, tt.bgAt.Y)) {
				t.Errorf("expected background at %v, got %v", tt.bgAt, frame.At(tt.bgAt.X, tt.bgAt.Y))
			}
		})
	}
}

func TestCompositor_Compose_BackgroundIsFadedGray(t *testing.T) {
	path := writePhoto(t, t.TempDir(), "photo.jpg", createTestJPEG(200, 100, red))
	comp := newTestCompositor(&domain.SlideshowConfig{Captions: domain.CaptionNone})

	frame, err := comp.Compose(context.Background(), path, 400, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, g, b, _ := frame.At(200, 5).RGBA()
	r8, g8, b8 := r>>8, g>>8, b>>8
	if absDiff(r8, g8) > 4 || absDiff(g8, b8) > 4 {
		t.Errorf("expected gray background, got %d,%d,%d", r8, g8, b8)
	}
	// gray(red) is ~76; faded 70% toward white lands near 200
	if r8 < 180 || r8 > 220 {
		t.Errorf("expected faded background around 200, got %d", r8)
	}
}

func TestCompositor_Compose_Caption(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2021-05-12 Anniversary Trip")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := writePhoto(t, dir, "beach.jpg", createTestJPEG(300, 200, color.RGBA{R: 40, G: 160, B: 40, A: 255}))

	plain, err := newTestCompositor(&domain.SlideshowConfig{Captions: domain.CaptionNone}).
		Compose(context.Background(), path, 640, 480)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, mode := range []domain.CaptionMode{domain.CaptionDirectory, domain.CaptionFilename, domain.CaptionDetail} {
		t.Run(string(mode), func(t *testing.T) {
			captioned, err := newTestCompositor(&domain.SlideshowConfig{Captions: mode}).
				Compose(context.Background(), path, 640, 480)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if captioned.Bounds() != plain.Bounds() {
				t.Fatalf("caption changed frame bounds: %v vs %v", captioned.Bounds(), plain.Bounds())
			}

			// Text runs up the left edge
			if changed := countDiff(plain, captioned, image.Rect(0, 0, 80, 480)); changed == 0 {
				t.Error("expected caption pixels along the left edge")
			}
			if changed := countDiff(plain, captioned, image.Rect(120, 0, 640, 480)); changed != 0 {
				t.Errorf("expected the rest of the frame untouched, %d pixels changed", changed)
			}
		})
	}
}

func TestCompositor_Compose_ExtremeAspectRatio(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "Sliver Tall", width: 1, height: 4000},
		{name: "Sliver Wide", width: 4000, height: 1},
		{name: "Panorama", width: 12000, height: 60},
	}

	comp := newTestCompositor(&domain.SlideshowConfig{Captions: domain.CaptionNone})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePhoto(t, t.TempDir(), "sliver.jpg", createTestJPEG(tt.width, tt.height, red))

			bg := backgroundGeometry(tt.width, tt.height, 1920, 1080)
			if fitsBackground(bg, 1920, 1080) {
				t.Fatalf("expected %dx%d background to exceed the area cap", bg.Width, bg.Height)
			}

			frame, err := comp.Compose(context.Background(), path, 1920, 1080)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b := frame.Bounds(); b.Dx() != 1920 || b.Dy() != 1080 {
				t.Errorf("expected 1920x1080 frame, got %dx%d", b.Dx(), b.Dy())
			}

			// The corner is background: gray(red) faded toward white
			r, g, b, _ := frame.At(0, 0).RGBA()
			if r>>8 < 180 || absDiff(r>>8, g>>8) > 4 || absDiff(g>>8, b>>8) > 4 {
				t.Errorf("expected faded gray background, got %d,%d,%d", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestCompositor_Compose_TooManyPixels(t *testing.T) {
	path := writePhoto(t, t.TempDir(), "huge.jpg", createTestJPEG(100, 100, red))
	comp := newTestCompositor(&domain.SlideshowConfig{Captions: domain.CaptionNone})
	comp.maxPixels = 100 * 99

	_, err := comp.Compose(context.Background(), path, 640, 480)

	var imgErr *ImageError
	if !errors.As(err, &imgErr) || imgErr.Path != path {
		t.Fatalf("expected ImageError for %s, got %v", path, err)
	}
	if !strings.Contains(err.Error(), "image too large") {
		t.Errorf("expected 'image too large', got %v", err)
	}
}

func TestBackgroundSource(t *testing.T) {
	tests := []struct {
		name             string
		photoW, photoH   int
		canvasW, canvasH int
		want             image.Rectangle
	}{
		{
			// scaled 960x480, crop (280,40)-(680,440)
			name:    "Wide Photo Square Canvas",
			photoW:  200,
			photoH:  100,
			canvasW: 400,
			canvasH: 400,
			want:    image.Rect(58, 8, 142, 92),
		},
		{
			// scaled 2304x9216000, the crop covers under half a source row
			name:    "Sliver Keeps One Row",
			photoW:  1,
			photoH:  4000,
			canvasW: 1920,
			canvasH: 1080,
			want:    image.Rect(0, 2000, 1, 2001),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := backgroundGeometry(tt.photoW, tt.photoH, tt.canvasW, tt.canvasH)
			got := backgroundSource(bg, tt.photoW, tt.photoH, tt.canvasW, tt.canvasH)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGeometry(t *testing.T) {
	canvases := []domain.ScreenResolution{{Width: 1920, Height: 1080}, {Width: 1080, Height: 1920}, {Width: 800, Height: 800}}
	photos := []domain.ScreenResolution{
		{Width: 4000, Height: 1000}, // wide
		{Width: 1000, Height: 4000}, // tall
		{Width: 3000, Height: 3000}, // square
		{Width: 7, Height: 3},
	}

	for _, c := range canvases {
		for _, p := range photos {
			bg := backgroundGeometry(p.Width, p.Height, c.Width, c.Height)
			if bg.Width < c.Width || bg.Height < c.Height {
				t.Errorf("background %dx%d does not cover canvas %dx%d", bg.Width, bg.Height, c.Width, c.Height)
			}
			if bg.Left < 0 || bg.Top < 0 || bg.Left+c.Width > bg.Width || bg.Top+c.Height > bg.Height {
				t.Errorf("crop %d,%d of %dx%d falls outside %dx%d", bg.Left, bg.Top, c.Width, c.Height, bg.Width, bg.Height)
			}

			fg := foregroundGeometry(p.Width, p.Height, c.Width, c.Height)
			if fg.Width > c.Width || fg.Height > c.Height {
				t.Errorf("foreground %dx%d overflows canvas %dx%d", fg.Width, fg.Height, c.Width, c.Height)
			}
			if fg.Left != (c.Width-fg.Width)/2 || fg.Top != (c.Height-fg.Height)/2 {
				t.Errorf("foreground not centered: %+v on %dx%d", fg, c.Width, c.Height)
			}
		}
	}

	// Exact values for a 200x100 photo on a 400x400 canvas
	if got := backgroundGeometry(200, 100, 400, 400); got != (layer{Width: 960, Height: 480, Left: 280, Top: 40}) {
		t.Errorf("unexpected background geometry %+v", got)
	}
	if got := foregroundGeometry(200, 100, 400, 400); got != (layer{Width: 380, Height: 190, Left: 10, Top: 105}) {
		t.Errorf("unexpected foreground geometry %+v", got)
	}
}

func TestOrient(t *testing.T) {
	img := solid(30, 10, red)

	tests := []struct {
		orientation int
		w, h        int
	}{
		{0, 30, 10},
		{1, 30, 10},
		{3, 30, 10},
		{6, 10, 30},
		{8, 10, 30},
	}

	for _, tt := range tests {
		b := Orient(img, tt.orientation).Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("Orient(%d) = %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}

func newTestCompositor(cfg *domain.SlideshowConfig) *Compositor {
	return NewCompositor(zap.NewNop(), cfg, config.DefaultFonts(), loader.NewFileLoader(zap.NewNop()))
}

// createTestJPEG generates a simple JPEG image for testing
func createTestJPEG(width, height int, col color.Color) []byte {
	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, solid(width, height, col), &jpeg.Options{Quality: 80})
	if err != nil {
		panic("failed to create test JPEG: " + err.Error())
	}
	return buf.Bytes()
}

func solid(width, height int, col color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, col)
		}
	}
	return img
}

func writePhoto(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 200 && g>>8 < 60 && b>>8 < 60
}

func countDiff(a, b image.Image, area image.Rectangle) int {
	n := 0
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				n++
			}
		}
	}
	return n
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
