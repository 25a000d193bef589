package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/genricoloni/photoshow/internal/domain"
	"go.uber.org/zap"
)

// defaultPollInterval is how often the wait between photos checks for
// skip and stop requests
const defaultPollInterval = time.Second

// Engine runs the slideshow: it pulls photos from the selector, composes
// them and keeps each on screen for the configured delay.
type Engine struct {
	logger       *zap.Logger
	cfg          *domain.SlideshowConfig
	res          *domain.ScreenResolution
	session      *domain.Session
	selector     domain.Selector
	compositor   domain.Compositor
	display      domain.Display
	pollInterval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a new slideshow engine
func NewEngine(
	logger *zap.Logger,
	cfg *domain.SlideshowConfig,
	res *domain.ScreenResolution,
	session *domain.Session,
	sel domain.Selector,
	comp domain.Compositor,
	disp domain.Display,
) *Engine {
	return &Engine{
		logger:       logger,
		cfg:          cfg,
		res:          res,
		session:      session,
		selector:     sel,
		compositor:   comp,
		display:      disp,
		pollInterval: defaultPollInterval,
	}
}

// Start launches the slideshow loop in a goroutine and returns immediately.
// The display is closed when the loop ends.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...")

	// The start context only bounds startup, the loop outlives it
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel
	e.done = make(chan struct{})

	go func() {
		defer close(e.done)
		if err := e.Run(loopCtx); err != nil {
			e.logger.Error("Slideshow aborted", zap.Error(err))
		}
		e.display.Close()
	}()
	return nil
}

// Run shows photos until the session is stopped, the context is cancelled
// or the selector runs out of photos
func (e *Engine) Run(ctx context.Context) error {
	shown := 0

	for e.session.Running() && ctx.Err() == nil {
		photo, ok := e.selector.Next(ctx)
		if !ok {
			break
		}

		frame, err := e.compositor.Compose(ctx, photo.Path, e.res.Width, e.res.Height)
		if err != nil {
			// A bad photo never ends the slideshow
			e.logger.Error("Failed to compose photo",
				zap.String("path", photo.Path),
				zap.Error(err))
			continue
		}

		e.display.Show(frame)
		e.session.ClearSkip()
		shown++

		e.logger.Debug("Photo shown", zap.String("path", photo.Path))

		if !e.wait(ctx) {
			break
		}
	}

	// A rescan cut short by shutdown is not a failure
	if err := e.selector.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("photo selection failed: %w", err)
	}

	e.logger.Info("Slideshow finished",
		zap.Int("shown", shown),
		zap.Bool("stopped", !e.session.Running()))
	return nil
}

// wait keeps the current photo up for the configured delay, polling for
// input. It returns false when the slideshow should end.
func (e *Engine) wait(ctx context.Context) bool {
	ticks := int(e.cfg.Delay / e.pollInterval)
	if ticks == 0 {
		return e.session.Running()
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for range ticks {
		if !e.session.Running() {
			return false
		}
		if e.session.SkipRequested() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
	return e.session.Running()
}

// Stop ends the slideshow and waits for the loop to return
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	e.session.Stop()
	if e.cancel == nil {
		return nil
	}
	e.cancel()

	select {
	case <-e.done:
		e.logger.Info("Engine stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
