//go:build linux

package inhibit

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	appName = "photoshow"
	reason  = "Slideshow running"
)

// ScreenSaverInhibitor keeps the desktop screen saver off through the
// freedesktop ScreenSaver D-Bus interface
type ScreenSaverInhibitor struct {
	logger  *zap.Logger
	connect func() (DBusClient, error)

	mu     sync.Mutex
	conn   DBusClient
	cookie uint32
	active bool
}

// NewScreenSaverInhibitor creates an inhibitor that connects to the
// session bus on the first Inhibit
func NewScreenSaverInhibitor(logger *zap.Logger) *ScreenSaverInhibitor {
	return &ScreenSaverInhibitor{
		logger: logger,
		connect: func() (DBusClient, error) {
			return NewStdDBusClient()
		},
	}
}

// Inhibit suspends the screen saver. Calling it again while active is a
// no-op.
func (i *ScreenSaverInhibitor) Inhibit(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active {
		return nil
	}

	if i.conn == nil {
		conn, err := i.connect()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		i.conn = conn
	}

	cookie, err := i.conn.Inhibit(ctx, appName, reason)
	if err != nil {
		return fmt.Errorf("failed to inhibit screen saver: %w", err)
	}

	i.cookie = cookie
	i.active = true
	i.logger.Info("Screen saver inhibited", zap.Uint32("cookie", cookie))
	return nil
}

// Release lifts the inhibition and closes the bus connection
func (i *ScreenSaverInhibitor) Release(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.conn == nil {
		return nil
	}

	var err error
	if i.active {
		if err = i.conn.UnInhibit(ctx, i.cookie); err != nil {
			err = fmt.Errorf("failed to release screen saver: %w", err)
		} else {
			i.logger.Info("Screen saver released", zap.Uint32("cookie", i.cookie))
		}
		i.active = false
	}

	if closeErr := i.conn.Close(); closeErr != nil {
		i.logger.Warn("Failed to close D-Bus connection", zap.Error(closeErr))
	}
	i.conn = nil
	return err
}
