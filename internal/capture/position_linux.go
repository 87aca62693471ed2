//go:build linux

package capture

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// moveWindow moves the window with the given title to (x, y) and keeps it
// above other windows. The window has to exist, so it waits briefly for it.
func moveWindow(windowTitle string, x, y int) {
	// Give the window time to appear
	time.Sleep(100 * time.Millisecond)

	cmd := exec.Command("xdotool", "search", "--name", windowTitle)
	output, err := cmd.Output()
	if err != nil {
		log.Debug().Err(err).Msg("xdotool search failed")
		return
	}

	windowIDs := strings.Fields(string(output))
	if len(windowIDs) == 0 {
		return
	}

	windowID := windowIDs[0]

	moveCmd := exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(x), strconv.Itoa(y))
	if err := moveCmd.Run(); err != nil {
		log.Debug().Err(err).Msg("xdotool windowmove failed")
	}

	// Try to set always-on-top using wmctrl
	wmctrlCmd := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above")
	if err := wmctrlCmd.Run(); err != nil {
		// wmctrl might not be installed, try xprop alternative
		xpropCmd := exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE")
		_ = xpropCmd.Run()
	}
}

// ScreenMonitor reports the display size through xdotool.
type ScreenMonitor struct{}

// Size returns the screen dimensions.
func (ScreenMonitor) Size() (width, height int, err error) {
	output, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("capture: display geometry: %w", err)
	}
	return parseGeometry(string(output))
}

func parseGeometry(s string) (width, height int, err error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, errors.New("capture: unexpected display geometry " + strconv.Quote(s))
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("capture: display width: %w", err)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("capture: display height: %w", err)
	}
	return width, height, nil
}
