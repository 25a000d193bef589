package display

import (
	"github.com/genricoloni/photoshow/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

var fallbackResolution = domain.ScreenResolution{Width: 1920, Height: 1080}

// Display probes, swapped out in tests
var (
	activeDisplays = screenshot.NumActiveDisplays
	displayBounds  = screenshot.GetDisplayBounds
)

// NewScreenResolution detects the size of the primary display, which is
// the canvas every frame is composed for
func NewScreenResolution(logger *zap.Logger) *domain.ScreenResolution {
	n := activeDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, falling back to default resolution",
			zap.Int("width", fallbackResolution.Width),
			zap.Int("height", fallbackResolution.Height))
		res := fallbackResolution
		return &res
	}

	for i := 1; i < n; i++ {
		logger.Debug("Ignoring secondary display", zap.Int("index", i), zap.Stringer("bounds", displayBounds(i)))
	}

	bounds := displayBounds(0)
	if bounds.Empty() {
		logger.Warn("Primary display reports empty bounds, falling back to default resolution")
		res := fallbackResolution
		return &res
	}

	res := &domain.ScreenResolution{Width: bounds.Dx(), Height: bounds.Dy()}
	logger.Info("Screen resolution detected",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))
	return res
}
