package types

import "image/color"

// Matrix is a backend-agnostic pixel sink: anything that can be
// cleared, painted pixel by pixel, pushed to the physical display, and
// torn down. internal/display.Panel implements it over a hub75.Session
// so callers that only know about this interface never need to import
// pkg/hub75 directly.
type Matrix interface {
	Clear() error
	SetPixel(x, y int, c color.Color) error
	Show() error
	Close() error
}
