package screen

import (
	"image"
	"log/slog"

	"github.com/kbinani/screenshot"

	"github.com/vedantwpatil/sideclick/internal/config"
)

// Displays returns the bounds of every active display in virtual desktop
// coordinates.
func Displays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// OffScreen returns the indices of points that fall outside every display.
func OffScreen(points []config.ClickPoint, displays []image.Rectangle) []int {
	var outside []int
	for i, p := range points {
		if !onAnyDisplay(image.Pt(p.X, p.Y), displays) {
			outside = append(outside, i)
		}
	}
	return outside
}

func onAnyDisplay(pt image.Point, displays []image.Rectangle) bool {
	for _, r := range displays {
		if pt.In(r) {
			return true
		}
	}
	return false
}

// Report logs a warning for each point outside the given displays. Points
// are never moved; the platform decides what a click there does. It
// returns the number of off-screen points.
func Report(logger *slog.Logger, cfg *config.ClickConfig, displays []image.Rectangle) int {
	if len(displays) == 0 {
		logger.Debug("no active displays detected, skipping bounds check")
		return 0
	}
	outside := OffScreen(cfg.Points, displays)
	for _, i := range outside {
		p := cfg.Points[i]
		logger.Warn("click point lies outside every display",
			slog.Int("point", i),
			slog.Int("x", p.X),
			slog.Int("y", p.Y))
	}
	return len(outside)
}
