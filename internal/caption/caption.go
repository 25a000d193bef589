// Package caption derives the caption lines drawn over a photo.
package caption

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/genricoloni/photoshow/internal/domain"
	"github.com/genricoloni/photoshow/internal/metadata"
)

// minFolderPrefix is the length a date-like folder prefix must exceed
// before it is stripped ("2021-05-12 " qualifies, "1 " does not)
const minFolderPrefix = 8

var folderPrefix = regexp.MustCompile(`^[\d\-~]* `)

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Derive computes the caption of the photo at path for the given mode
func Derive(mode domain.CaptionMode, path string, meta metadata.Metadata) domain.Caption {
	switch mode {
	case domain.CaptionDirectory:
		return domain.Caption{Primary: parentName(path)}
	case domain.CaptionFilename:
		return domain.Caption{Primary: filepath.Base(path)}
	case domain.CaptionDetail:
		return detail(path, meta)
	default:
		return domain.Caption{}
	}
}

func detail(path string, meta metadata.Metadata) domain.Caption {
	var c domain.Caption

	if meta.HasCaptureDate() {
		if when, ok := MonthYear(meta.CaptureDate); ok {
			c.Primary = when
			c.Secondary = filepath.Base(path)
		}
	}

	description := meta.Description
	if description == "" {
		description = FolderDescription(parentName(path))
	}

	if description != "" {
		if c.Primary != "" {
			c.Primary += ": "
		}
		c.Primary += description
	}

	return c
}

// MonthYear formats an EXIF date ("2021:05:12 10:00:00") as "May 2021".
// Dates too short or with an out-of-range month are treated as missing.
func MonthYear(exifDate string) (string, bool) {
	if len(exifDate) < 7 {
		return "", false
	}
	m, err := strconv.Atoi(exifDate[5:7])
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	return months[m-1] + " " + exifDate[:4], true
}

// FolderDescription strips a date-stamp prefix from a folder name.
// "2021-05-12 Holiday" becomes "Holiday"; short prefixes such as "1 Misc"
// are kept.
func FolderDescription(folder string) string {
	prefix := folderPrefix.FindString(folder)
	if prefix != "" && len(prefix) > minFolderPrefix {
		_, rest, _ := strings.Cut(folder, " ")
		return rest
	}
	return folder
}

func parentName(path string) string {
	return filepath.Base(filepath.Dir(path))
}
