package platform

import "errors"

// Sentinel errors for host operations.
var (
	// ErrTerminated is returned by Run when the host context is cancelled.
	ErrTerminated = errors.New("platform: host terminated")

	// ErrNotRaster is reported when the window target cannot be presented
	// because it is not a raster target.
	ErrNotRaster = errors.New("platform: render target is not a raster target")
)
