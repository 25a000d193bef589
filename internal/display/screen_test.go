package display

import (
	"image"
	"testing"

	"go.uber.org/zap"
)

func TestNewScreenResolution(t *testing.T) {
	tests := []struct {
		name   string
		bounds []image.Rectangle
		width  int
		height int
	}{
		{
			name:   "Primary Display",
			bounds: []image.Rectangle{image.Rect(0, 0, 2560, 1440)},
			width:  2560,
			height: 1440,
		},
		{
			name:   "Secondary Display Ignored",
			bounds: []image.Rectangle{image.Rect(0, 0, 1280, 1024), image.Rect(1280, 0, 5120, 2160)},
			width:  1280,
			height: 1024,
		},
		{
			name:   "No Displays",
			width:  1920,
			height: 1080,
		},
		{
			name:   "Empty Bounds",
			bounds: []image.Rectangle{{}},
			width:  1920,
			height: 1080,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := stubDisplays(tt.bounds...)
			defer restore()

			res := NewScreenResolution(zap.NewNop())
			if res.Width != tt.width || res.Height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, res.Width, res.Height)
			}
		})
	}
}

// stubDisplays replaces the display probes with fixed bounds and returns a
// function restoring them
func stubDisplays(bounds ...image.Rectangle) func() {
	prevActive, prevBounds := activeDisplays, displayBounds
	activeDisplays = func() int { return len(bounds) }
	displayBounds = func(i int) image.Rectangle { return bounds[i] }
	return func() {
		activeDisplays, displayBounds = prevActive, prevBounds
	}
}
