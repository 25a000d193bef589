// Package metadata reads the handful of EXIF fields the slideshow cares about.
package metadata

import (
	"fmt"
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Orientation values that require a rotation
const (
	OrientationRotate180 = 3
	OrientationRotate270 = 6
	OrientationRotate90  = 8
)

// Metadata is the typed view of a photo's EXIF block.
// The zero value means "no metadata".
type Metadata struct {
	// Orientation is the raw EXIF orientation, 0 when missing
	Orientation int
	// CaptureDate is DateTimeOriginal as stored ("2006:01:02 15:04:05")
	CaptureDate string
	// Description is the trimmed image description
	Description string
}

// HasCaptureDate reports whether an original capture date was recorded
func (m Metadata) HasCaptureDate() bool {
	return m.CaptureDate != ""
}

// Read decodes the EXIF block of a JPEG or TIFF stream.
// Any decode failure yields the zero Metadata together with the cause so the
// caller can log it; a missing individual tag is not an error.
func Read(r io.Reader) (Metadata, error) {
	x, err := exif.Decode(r)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return Metadata{}, fmt.Errorf("failed to decode exif: %w", err)
	}

	return Metadata{
		Orientation: intField(x, exif.Orientation),
		CaptureDate: stringField(x, exif.DateTimeOriginal),
		Description: stringField(x, exif.ImageDescription),
	}, nil
}

func intField(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
