package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support

	"github.com/disintegration/imaging"
	"github.com/genricoloni/photoshow/internal/caption"
	"github.com/genricoloni/photoshow/internal/domain"
	"github.com/genricoloni/photoshow/internal/metadata"
	"go.uber.org/zap"
)

const (
	blurSigma   = 6.0
	fadeOpacity = 0.7 // share of white blended over the background

	_maxPixels = 100_000_000 // decoded size limit, 100 megapixels
)

// ImageError reports a photo that could not be turned into a frame.
// The slideshow logs it and moves on to the next photo.
type ImageError struct {
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// Compositor renders a photo centered over a faded, blurred grayscale copy
// of itself, optionally captioned
type Compositor struct {
	logger    *zap.Logger
	cfg       *domain.SlideshowConfig
	fonts     *domain.Fonts
	loader    domain.Loader
	maxPixels int64
}

// NewCompositor creates a new compositor
func NewCompositor(logger *zap.Logger, cfg *domain.SlideshowConfig, fonts *domain.Fonts, loader domain.Loader) *Compositor {
	return &Compositor{
		logger:    logger,
		cfg:       cfg,
		fonts:     fonts,
		loader:    loader,
		maxPixels: _maxPixels,
	}
}

// Compose builds the frame for the photo at path on a width x height canvas
func (c *Compositor) Compose(ctx context.Context, path string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, &ImageError{Path: path, Err: fmt.Errorf("invalid canvas size: %dx%d", width, height)}
	}

	// 1. Read and decode
	data, err := c.loader.Load(ctx, path)
	if err != nil {
		return nil, &ImageError{Path: path, Err: err}
	}

	// A small file can still declare huge dimensions
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	if int64(imgCfg.Width)*int64(imgCfg.Height) > c.maxPixels {
		return nil, &ImageError{Path: path, Err: fmt.Errorf("image too large: %dx%d", imgCfg.Width, imgCfg.Height)}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	// Validate image dimensions to prevent division by zero
	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, &ImageError{Path: path, Err: fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())}
	}

	// 2. Orientation; a photo without usable EXIF is shown as stored
	meta, err := metadata.Read(bytes.NewReader(data))
	if err != nil {
		c.logger.Debug("No usable EXIF", zap.String("path", path), zap.Error(err))
	}
	img = Orient(img, meta.Orientation)

	// 3-5. Background and foreground
	frame := c.composite(img, width, height)

	// 6. Caption
	if c.cfg.Captions != domain.CaptionNone {
		capt := caption.Derive(c.cfg.Captions, path, meta)
		if capt.Primary != "" {
			frame = drawCaption(frame, capt, c.fonts)
		}
	}

	c.logger.Debug("Frame composed",
		zap.String("path", path),
		zap.Int("w", width),
		zap.Int("h", height))
	return frame, nil
}

// Orient applies the rotation implied by an EXIF orientation value
func Orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case metadata.OrientationRotate180:
		return imaging.Rotate180(img)
	case metadata.OrientationRotate270:
		return imaging.Rotate270(img)
	case metadata.OrientationRotate90:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func (c *Compositor) composite(img image.Image, width, height int) *image.NRGBA {
	bounds := img.Bounds()
	bg := backgroundGeometry(bounds.Dx(), bounds.Dy(), width, height)
	fg := foregroundGeometry(bounds.Dx(), bounds.Dy(), width, height)

	var background *image.NRGBA
	if fitsBackground(bg, width, height) {
		c.logger.Debug("Creating faded background", zap.Int("w", bg.Width), zap.Int("h", bg.Height))
		gray := imaging.Grayscale(imaging.Resize(img, bg.Width, bg.Height, imaging.Lanczos))
		background = imaging.Paste(imaging.New(bg.Width, bg.Height, color.Transparent), gray, image.Pt(0, 0))
		background = imaging.Crop(background, image.Rect(bg.Left, bg.Top, bg.Left+width, bg.Top+height))
	} else {
		src := backgroundSource(bg, bounds.Dx(), bounds.Dy(), width, height)
		c.logger.Debug("Creating faded background from photo region",
			zap.Stringer("region", src),
			zap.Int("w", bg.Width),
			zap.Int("h", bg.Height))
		region := imaging.Crop(img, src.Add(bounds.Min))
		background = imaging.Grayscale(imaging.Resize(region, width, height, imaging.Lanczos))
	}
	background = imaging.Blur(background, blurSigma)
	background = imaging.Overlay(background, imaging.New(width, height, color.White), image.Pt(0, 0), fadeOpacity)

	c.logger.Debug("Resizing centered photo", zap.Int("w", fg.Width), zap.Int("h", fg.Height))
	photo := imaging.Resize(img, fg.Width, fg.Height, imaging.Lanczos)
	return imaging.Overlay(background, photo, image.Pt(fg.Left, fg.Top), 1.0)
}
