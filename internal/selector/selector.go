// Package selector builds and iterates the sequence of photos to show.
package selector

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/genricoloni/photoshow/internal/domain"
	"go.uber.org/zap"
)

// SupportedExt lists the photo extensions picked up by a scan (lowercase)
var SupportedExt = mapset.NewSet(".jpg", ".jpeg")

// Selector scans the root directory and hands out photos one at a time.
// Once a scan's photos are used up it rescans when Repeat is set, so files
// added or removed during playback are picked up.
type Selector struct {
	logger *zap.Logger
	cfg    *domain.SlideshowConfig
	rng    *rand.Rand

	queue     []domain.PhotoRecord
	needsScan bool
	done      bool
	err       error
}

// NewSelector creates a selector that scans on the first call to Next
func NewSelector(logger *zap.Logger, cfg *domain.SlideshowConfig) *Selector {
	return &Selector{
		logger:    logger,
		cfg:       cfg,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		needsScan: true,
	}
}

// Next returns the next photo. It returns false when the sequence ended,
// either because it was exhausted without Repeat or because a scan failed
// or was cancelled through ctx (see Err).
func (s *Selector) Next(ctx context.Context) (domain.PhotoRecord, bool) {
	for !s.done {
		if len(s.queue) > 0 {
			rec := s.queue[0]
			s.queue = s.queue[1:]
			return rec, true
		}

		if !s.needsScan {
			if !s.cfg.Repeat {
				s.done = true
				break
			}
			s.needsScan = true
		}

		photos, err := s.Scan(ctx)
		s.needsScan = false
		if err != nil {
			s.err = err
			s.done = true
			break
		}
		if len(photos) == 0 {
			s.logger.Warn("No photos found", zap.String("root", s.cfg.Root))
			s.done = true
			break
		}
		s.queue = photos
	}
	return domain.PhotoRecord{}, false
}

// Err returns the scan error that ended the sequence, if any
func (s *Selector) Err() error {
	return s.err
}

// Scan walks the root once and returns the photos to show, shuffled and
// capped when Random is set. Non-random scans keep walk order and are never
// capped.
func (s *Selector) Scan(ctx context.Context) ([]domain.PhotoRecord, error) {
	var photos []domain.PhotoRecord

	err := filepath.WalkDir(s.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !SupportedExt.Contains(strings.ToLower(filepath.Ext(d.Name()))) {
			return nil
		}
		// Each directory is checked on its own; an ignored parent does not
		// stop the walk from descending into its children.
		if ignored(s.cfg.Ignore, filepath.Dir(path)) || ignored(s.cfg.Ignore, path) {
			return nil
		}
		photos = append(photos, domain.PhotoRecord{Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.cfg.Root, err)
	}

	s.logger.Debug("Scan complete",
		zap.String("root", s.cfg.Root),
		zap.Int("photos", len(photos)))

	if s.cfg.Random {
		return s.sample(photos), nil
	}
	return photos, nil
}

// sample draws min(MaxPhotos, len(photos)) photos without replacement by
// repeatedly removing a uniformly random element
func (s *Selector) sample(photos []domain.PhotoRecord) []domain.PhotoRecord {
	count := len(photos)
	if s.cfg.MaxPhotos > 0 {
		count = min(s.cfg.MaxPhotos, count)
	}

	picked := make([]domain.PhotoRecord, 0, count)
	for range count {
		i := s.rng.IntN(len(photos))
		picked = append(picked, photos[i])
		photos = append(photos[:i], photos[i+1:]...)
	}
	return picked
}
