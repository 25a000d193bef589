package domain

import (
	"sync/atomic"
	"time"

	"golang.org/x/image/font"
)

// CaptionMode selects how the caption text of a photo is derived
type CaptionMode string

const (
	// CaptionNone disables captions
	CaptionNone CaptionMode = "none"
	// CaptionDirectory uses the name of the photo's parent directory
	CaptionDirectory CaptionMode = "directory"
	// CaptionFilename uses the photo's base name
	CaptionFilename CaptionMode = "filename"
	// CaptionDetail combines capture date, description and file name
	CaptionDetail CaptionMode = "detail"
)

// ParseCaptionMode maps a configured value to a CaptionMode.
// Unknown values disable captions.
func ParseCaptionMode(s string) CaptionMode {
	switch m := CaptionMode(s); m {
	case CaptionDirectory, CaptionFilename, CaptionDetail:
		return m
	default:
		return CaptionNone
	}
}

// SlideshowConfig is the read-only configuration of a slideshow session.
// It is built once at startup and never modified afterwards.
type SlideshowConfig struct {
	// Root is the directory scanned for photos
	Root string
	// Captions is the caption derivation mode
	Captions CaptionMode
	// Delay is how long each photo stays on screen
	Delay time.Duration
	// Random shuffles (and optionally caps) each scan
	Random bool
	// Repeat rescans the root once a sequence is exhausted
	Repeat bool
	// MaxPhotos caps a random sequence, 0 means unbounded
	MaxPhotos int
	// Ignore holds normalized path prefixes excluded from scans
	Ignore []string
	// FontPath is the caption font file, empty for the bundled face
	FontPath string
}

// Fonts holds the two caption faces
type Fonts struct {
	Large font.Face
	Small font.Face
}

// PhotoRecord is an eligible photo discovered under the root
type PhotoRecord struct {
	Path string
}

// Caption is the derived caption of one photo. Either line may be empty.
type Caption struct {
	Primary   string
	Secondary string
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}

// Session carries the mutable signals shared by the control loop and the
// display's input handlers. The flags are atomic because the window's event
// loop runs on a different goroutine than the control loop.
type Session struct {
	stopped atomic.Bool
	skip    atomic.Bool
}

// NewSession creates a running session
func NewSession() *Session {
	return &Session{}
}

// Stop ends the session
func (s *Session) Stop() {
	s.stopped.Store(true)
}

// Running reports whether the session has not been stopped
func (s *Session) Running() bool {
	return !s.stopped.Load()
}

// Skip requests the next photo
func (s *Session) Skip() {
	s.skip.Store(true)
}

// SkipRequested reports whether a skip is pending
func (s *Session) SkipRequested() bool {
	return s.skip.Load()
}

// ClearSkip drops any pending skip request
func (s *Session) ClearSkip() {
	s.skip.Store(false)
}
