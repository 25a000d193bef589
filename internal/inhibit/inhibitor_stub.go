//go:build !linux

package inhibit

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ScreenSaverInhibitor stub for non-Linux platforms
type ScreenSaverInhibitor struct {
	logger *zap.Logger
}

// NewScreenSaverInhibitor creates a stub inhibitor
func NewScreenSaverInhibitor(logger *zap.Logger) *ScreenSaverInhibitor {
	return &ScreenSaverInhibitor{logger: logger}
}

// Inhibit returns an error indicating inhibition is not supported on this platform
func (i *ScreenSaverInhibitor) Inhibit(ctx context.Context) error {
	return fmt.Errorf("screen saver inhibition is only supported on Linux systems")
}

// Release is a no-op on non-Linux platforms
func (i *ScreenSaverInhibitor) Release(ctx context.Context) error {
	return nil
}
