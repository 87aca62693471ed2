//go:build !linux

package capture

import "errors"

// moveWindow is a stub for non-Linux platforms.
// Window positioning is platform-specific and not yet implemented for this OS.
func moveWindow(windowTitle string, x, y int) {
}

// ScreenMonitor is a stub: the capture window keeps the position chosen by the OS.
type ScreenMonitor struct{}

// Size always fails on this platform.
func (ScreenMonitor) Size() (width, height int, err error) {
	return 0, 0, errors.New("capture: monitor size not supported on this platform")
}
