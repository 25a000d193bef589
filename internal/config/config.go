package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genricoloni/photoshow/internal/domain"
	"github.com/genricoloni/photoshow/internal/selector"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultCaptions  = string(domain.CaptionNone)
	defaultDelayTime = 15
	defaultDelayUnit = "S"
	defaultRandom    = true
	defaultRepeat    = true
)

var (
	// ErrNoPath is returned when no photo root was given by any source
	ErrNoPath = errors.New("no path provided")
	// ErrNotDirectory is returned when the photo root is not a directory
	ErrNotDirectory = errors.New("path is not a directory")
	// ErrFontNotFound is returned when the configured font file does not exist
	ErrFontNotFound = errors.New("font not found")
)

// Params is one layer of slideshow parameters. Nil fields are unset and
// leave the value of lower layers in place.
type Params struct {
	Path      *string
	Captions  *string
	DelayTime *int
	DelayUnit *string
	MaxPhotos *int
	Random    *bool
	Repeat    *bool
	Ignore    []string
	FontPath  *string
}

// merge overlays the fields set in o
func (p *Params) merge(o Params) {
	if o.Path != nil {
		p.Path = o.Path
	}
	if o.Captions != nil {
		p.Captions = o.Captions
	}
	if o.DelayTime != nil {
		p.DelayTime = o.DelayTime
	}
	if o.DelayUnit != nil {
		p.DelayUnit = o.DelayUnit
	}
	if o.MaxPhotos != nil {
		p.MaxPhotos = o.MaxPhotos
	}
	if o.Random != nil {
		p.Random = o.Random
	}
	if o.Repeat != nil {
		p.Repeat = o.Repeat
	}
	if o.Ignore != nil {
		p.Ignore = o.Ignore
	}
	if o.FontPath != nil {
		p.FontPath = o.FontPath
	}
}

// Args is what the command line supplied: the positional source (a photo
// directory or a JSON parameter file) and the flags that were actually given
type Args struct {
	Source   string
	Explicit Params
}

func defaults() Params {
	return Params{
		Captions:  ptr(defaultCaptions),
		DelayTime: ptr(defaultDelayTime),
		DelayUnit: ptr(defaultDelayUnit),
		MaxPhotos: ptr(0),
		Random:    ptr(defaultRandom),
		Repeat:    ptr(defaultRepeat),
	}
}

// NewSlideshowConfig resolves the slideshow configuration. Sources in
// increasing precedence: defaults, PHOTOSHOW_* environment (and .env),
// the JSON parameter file, explicit command line flags.
func NewSlideshowConfig(logger *zap.Logger, args Args) (*domain.SlideshowConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	p := defaults()
	p.merge(envParams(logger, os.LookupEnv))

	if isParameterFile(args.Source) {
		fileParams, err := readParameterFile(args.Source)
		if err != nil {
			return nil, err
		}
		p.merge(fileParams)
	} else if args.Source != "" {
		p.Path = &args.Source
	}

	p.merge(args.Explicit)

	cfg, err := resolve(p)
	if err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("root", cfg.Root),
		zap.String("captions", string(cfg.Captions)),
		zap.Duration("delay", cfg.Delay),
		zap.Bool("random", cfg.Random),
		zap.Bool("repeat", cfg.Repeat),
		zap.Int("maxPhotos", cfg.MaxPhotos),
		zap.Int("ignored", len(cfg.Ignore)),
		zap.String("font", cfg.FontPath))

	return cfg, nil
}

// resolve validates a merged parameter set and builds the immutable config
func resolve(p Params) (*domain.SlideshowConfig, error) {
	if p.Path == nil || *p.Path == "" {
		return nil, ErrNoPath
	}
	root := expandHome(*p.Path)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var fontPath string
	if p.FontPath != nil && *p.FontPath != "" {
		fontPath = expandHome(*p.FontPath)
		if info, err := os.Stat(fontPath); err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, fontPath)
		}
	}

	if *p.DelayTime < 0 {
		return nil, fmt.Errorf("delay must not be negative: %d", *p.DelayTime)
	}
	if *p.MaxPhotos < 0 {
		return nil, fmt.Errorf("max photos must not be negative: %d", *p.MaxPhotos)
	}

	return &domain.SlideshowConfig{
		Root:      root,
		Captions:  domain.ParseCaptionMode(*p.Captions),
		Delay:     Delay(*p.DelayTime, *p.DelayUnit),
		Random:    *p.Random,
		Repeat:    *p.Repeat,
		MaxPhotos: *p.MaxPhotos,
		Ignore:    selector.IgnorePrefixes(root, p.Ignore),
		FontPath:  fontPath,
	}, nil
}

// Delay converts a delay value and unit ("S" seconds, "M" minutes) into a
// duration. Units are case-sensitive; anything but "M" counts as seconds.
func Delay(value int, unit string) time.Duration {
	if unit == "M" {
		value *= 60
	}
	return time.Duration(value) * time.Second
}

func isParameterFile(source string) bool {
	return strings.HasSuffix(strings.ToLower(source), ".json")
}

// parameterFile mirrors the keys of a JSON parameter file
type parameterFile struct {
	Path         *string         `json:"path"`
	OverridePath *string         `json:"override_path"`
	Captions     json.RawMessage `json:"captions"`
	DelayTime    *json.Number    `json:"delay_time"`
	DelayUnit    *string         `json:"delay_unit"`
	MaxPhotos    *int            `json:"max_photos"`
	Random       *bool           `json:"random"`
	Repeat       *bool           `json:"repeat"`
	Ignore       []string        `json:"ignore"`
	FontPath     *string         `json:"font_path"`
}

func readParameterFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read parameter file: %w", err)
	}

	var f parameterFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Params{}, fmt.Errorf("failed to parse parameter file %s: %w", path, err)
	}

	p := Params{
		Path:      f.Path,
		DelayUnit: f.DelayUnit,
		MaxPhotos: f.MaxPhotos,
		Random:    f.Random,
		Repeat:    f.Repeat,
		Ignore:    f.Ignore,
		FontPath:  f.FontPath,
	}
	if f.OverridePath != nil {
		p.Path = f.OverridePath
	}
	if f.DelayTime != nil {
		n, err := f.DelayTime.Int64()
		if err != nil {
			return Params{}, fmt.Errorf("invalid delay_time %q: %w", f.DelayTime.String(), err)
		}
		p.DelayTime = ptr(int(n))
	}
	if len(f.Captions) > 0 && string(f.Captions) != "null" {
		p.Captions = ptr(captionsValue(f.Captions))
	}

	return p, nil
}

// captionsValue accepts either a mode string or a boolean; booleans carry
// no mode and disable captions
func captionsValue(raw json.RawMessage) string {
	var mode string
	if err := json.Unmarshal(raw, &mode); err == nil {
		return mode
	}
	return string(domain.CaptionNone)
}

func expandHome(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func ptr[T any](v T) *T {
	return &v
}
