package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/photoshow/internal/compositor"
	"github.com/genricoloni/photoshow/internal/config"
	"github.com/genricoloni/photoshow/internal/display"
	"github.com/genricoloni/photoshow/internal/domain"
	"github.com/genricoloni/photoshow/internal/engine"
	"github.com/genricoloni/photoshow/internal/inhibit"
	"github.com/genricoloni/photoshow/internal/loader"
	"github.com/genricoloni/photoshow/internal/selector"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the slideshow dependency graph. The parsed command line
// (config.Args) is supplied by main.
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newLogger,
		config.NewSlideshowConfig,
		config.NewFonts,
		display.NewScreenResolution,
		domain.NewSession,
		fx.Annotate(loader.NewFileLoader, fx.As(new(domain.Loader))),
		fx.Annotate(selector.NewSelector, fx.As(new(domain.Selector))),
		fx.Annotate(compositor.NewCompositor, fx.As(new(domain.Compositor))),
		fx.Annotate(display.NewWindow, fx.As(fx.Self()), fx.As(new(domain.Display))),
		fx.Annotate(inhibit.NewScreenSaverInhibitor, fx.As(new(domain.Inhibitor))),
		engine.NewEngine,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	os.Exit(run())
}

func run() int {
	args, err := config.ParseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	var window *display.Window
	app := fx.New(
		AppOptions,
		fx.Supply(args),
		fx.Populate(&window),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "photoshow: %v\n", err)
		return 1
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startCtx, startCancel := context.WithTimeout(ctx, app.StartTimeout())
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "photoshow: %v\n", err)
		return 1
	}

	go func() {
		<-ctx.Done()
		window.Close()
	}()

	// The UI event loop owns the main goroutine until the slideshow ends
	window.Run()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "photoshow: %v\n", err)
		return 1
	}
	return 0
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// registerHooks ties the engine and the screen saver inhibitor to the
// application lifecycle
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, eng *engine.Engine, inh domain.Inhibitor) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := inh.Inhibit(ctx); err != nil {
				logger.Warn("Screen saver stays enabled", zap.Error(err))
			}
			logger.Info("Photoshow started")
			return eng.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			err := eng.Stop(ctx)
			if relErr := inh.Release(ctx); relErr != nil {
				logger.Warn("Failed to release screen saver", zap.Error(relErr))
			}
			return err
		},
	})
}
