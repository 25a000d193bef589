package config

import (
	"errors"
	"flag"
	"io"
	"strings"
)

// ErrUsage is returned when the command line has no single source argument
var ErrUsage = errors.New("path or parameter file argument expected")

// stringList collects a repeatable flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ParseArgs parses the command line. Only flags present on the command line
// end up in Args.Explicit, so they override the parameter file for the same
// key and leave everything else alone.
func ParseArgs(args []string, output io.Writer) (Args, error) {
	fs := flag.NewFlagSet("photoshow", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = io.WriteString(output, "usage: photoshow [flags] <photo directory | parameters.json>\n")
		fs.PrintDefaults()
	}

	captions := fs.String("captions", defaultCaptions, "caption mode: none, directory, filename or detail")
	delayTime := fs.Int("delay", defaultDelayTime, "time each photo is shown, in -delay-unit units")
	delayUnit := fs.String("delay-unit", defaultDelayUnit, "delay unit: S (seconds) or M (minutes)")
	maxPhotos := fs.Int("max-photos", 0, "photos per pass when -random is set (0 shows all)")
	random := fs.Bool("random", defaultRandom, "shuffle the photos of each pass")
	repeat := fs.Bool("repeat", defaultRepeat, "rescan and start over once every photo was shown")
	fontPath := fs.String("font", "", "TrueType/OpenType font for captions (default: bundled Go Regular)")
	var ignore stringList
	fs.Var(&ignore, "ignore", "path to skip, relative to the photo directory (repeatable)")

	if err := fs.Parse(args); err != nil {
		return Args{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return Args{}, ErrUsage
	}

	var explicit Params
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "captions":
			explicit.Captions = captions
		case "delay":
			explicit.DelayTime = delayTime
		case "delay-unit":
			explicit.DelayUnit = delayUnit
		case "max-photos":
			explicit.MaxPhotos = maxPhotos
		case "random":
			explicit.Random = random
		case "repeat":
			explicit.Repeat = repeat
		case "font":
			explicit.FontPath = fontPath
		case "ignore":
			explicit.Ignore = []string(ignore)
		}
	})

	return Args{Source: fs.Arg(0), Explicit: explicit}, nil
}
