package domain

import (
	"context"
	"image"
)

// Selector yields the photos of a slideshow in display order
//
//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/photoshow/internal/domain Selector,Compositor,Display,Inhibitor
type Selector interface {
	// Next returns the next photo, or false once the sequence is exhausted.
	// ctx bounds any rescan needed to produce it.
	Next(ctx context.Context) (PhotoRecord, bool)

	// Err returns the error that ended the sequence, if any
	Err() error
}

// Compositor renders a photo into a display frame
type Compositor interface {
	// Compose decodes the photo at path and composes a frame of the
	// given canvas size
	Compose(ctx context.Context, path string, width, height int) (image.Image, error)
}

// Loader reads the raw bytes of a photo
type Loader interface {
	// Load reads image data from a local path
	Load(ctx context.Context, path string) ([]byte, error)
}

// Display shows composed frames
type Display interface {
	// Show replaces the visible frame
	Show(frame image.Image)

	// Close tears the display down, ending the UI event loop
	Close()
}

// Inhibitor keeps the screen saver from kicking in while photos are shown
type Inhibitor interface {
	// Inhibit suspends the screen saver until Release is called
	Inhibit(ctx context.Context) error

	// Release restores the screen saver
	Release(ctx context.Context) error
}
