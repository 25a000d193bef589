package config

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Environment variables read as the lowest-precedence parameter layer.
// They may also come from a .env file in the working directory.
const (
	EnvPath      = "PHOTOSHOW_PATH"
	EnvCaptions  = "PHOTOSHOW_CAPTIONS"
	EnvDelayTime = "PHOTOSHOW_DELAY_TIME"
	EnvDelayUnit = "PHOTOSHOW_DELAY_UNIT"
	EnvMaxPhotos = "PHOTOSHOW_MAX_PHOTOS"
	EnvRandom    = "PHOTOSHOW_RANDOM"
	EnvRepeat    = "PHOTOSHOW_REPEAT"
	EnvIgnore    = "PHOTOSHOW_IGNORE"
	EnvFontPath  = "PHOTOSHOW_FONT_PATH"
)

// envParams builds a parameter layer from the environment. Malformed
// numbers and booleans are logged and skipped.
func envParams(logger *zap.Logger, lookup func(string) (string, bool)) Params {
	var p Params

	str := func(key string) *string {
		if v, ok := lookup(key); ok && v != "" {
			return &v
		}
		return nil
	}
	num := func(key string) *int {
		v := str(key)
		if v == nil {
			return nil
		}
		n, err := strconv.Atoi(*v)
		if err != nil {
			logger.Warn("Ignoring malformed environment value", zap.String("key", key), zap.String("value", *v))
			return nil
		}
		return &n
	}
	flag := func(key string) *bool {
		v := str(key)
		if v == nil {
			return nil
		}
		b, err := strconv.ParseBool(*v)
		if err != nil {
			logger.Warn("Ignoring malformed environment value", zap.String("key", key), zap.String("value", *v))
			return nil
		}
		return &b
	}

	p.Path = str(EnvPath)
	p.Captions = str(EnvCaptions)
	p.DelayTime = num(EnvDelayTime)
	p.DelayUnit = str(EnvDelayUnit)
	p.MaxPhotos = num(EnvMaxPhotos)
	p.Random = flag(EnvRandom)
	p.Repeat = flag(EnvRepeat)
	p.FontPath = str(EnvFontPath)

	// Comma-separated, blanks dropped
	if v := str(EnvIgnore); v != nil {
		for _, entry := range strings.Split(*v, ",") {
			if trimmed := strings.TrimSpace(entry); trimmed != "" {
				p.Ignore = append(p.Ignore, trimmed)
			}
		}
	}

	return p
}
