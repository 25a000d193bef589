package config

import (
	"fmt"
	"os"

	"github.com/genricoloni/photoshow/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	largeFontSize = 40
	smallFontSize = 16
	fontDPI       = 72
)

// NewFonts loads the caption faces from the configured font file, or from
// the bundled Go Regular face when none is configured
func NewFonts(logger *zap.Logger, cfg *domain.SlideshowConfig) (*domain.Fonts, error) {
	data := goregular.TTF
	name := "Go Regular"

	if cfg.FontPath != "" {
		var err error
		data, err = os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		name = cfg.FontPath
	}

	fonts, err := ParseFonts(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}

	logger.Info("Caption fonts loaded", zap.String("font", name))
	return fonts, nil
}

// ParseFonts builds the large and small caption faces from font file data
func ParseFonts(data []byte) (*domain.Fonts, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	large, err := opentype.NewFace(f, &opentype.FaceOptions{Size: largeFontSize, DPI: fontDPI, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("failed to create large face: %w", err)
	}
	small, err := opentype.NewFace(f, &opentype.FaceOptions{Size: smallFontSize, DPI: fontDPI, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("failed to create small face: %w", err)
	}

	return &domain.Fonts{Large: large, Small: small}, nil
}

// DefaultFonts returns the bundled caption faces
func DefaultFonts() *domain.Fonts {
	fonts, err := ParseFonts(goregular.TTF)
	if err != nil {
		panic("bundled font is invalid: " + err.Error())
	}
	return fonts
}
