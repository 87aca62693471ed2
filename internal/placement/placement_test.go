package placement

import (
	"errors"
	"testing"
)

type fakeMonitor struct {
	width, height int
	err           error
}

func (m fakeMonitor) Size() (int, int, error) { return m.width, m.height, m.err }

type fakeWindow struct {
	moved bool
	x, y  int
}

func (w *fakeWindow) SetPosition(x, y int) {
	w.moved = true
	w.x, w.y = x, y
}

func TestTopRight(t *testing.T) {
	for _, width := range []int{800, 1366, 1920, 2560, 3840} {
		x, y := TopRight(width)
		if x != width-520-16 {
			t.Errorf("width %d: x = %d, want %d", width, x, width-520-16)
		}
		if y != 16 {
			t.Errorf("width %d: y = %d, want 16", width, y)
		}
	}
}

func TestPlaceTopRight(t *testing.T) {
	w := &fakeWindow{}
	if err := PlaceTopRight(fakeMonitor{width: 1920, height: 1080}, w); err != nil {
		t.Fatalf("PlaceTopRight: %v", err)
	}
	if !w.moved || w.x != 1384 || w.y != 16 {
		t.Errorf("window at (%d,%d) moved=%v", w.x, w.y, w.moved)
	}
}

func TestPlaceTopRight_MonitorFailureLeavesWindow(t *testing.T) {
	cases := []Monitor{
		nil,
		fakeMonitor{err: errors.New("no display")},
		fakeMonitor{width: 0, height: 0},
	}
	for i, m := range cases {
		w := &fakeWindow{}
		if err := PlaceTopRight(m, w); !errors.Is(err, ErrNoMonitor) {
			t.Errorf("case %d: err = %v, want ErrNoMonitor", i, err)
		}
		if w.moved {
			t.Errorf("case %d: window must not move", i)
		}
	}
}

func TestPlaceTopRight_KeepsMonitorError(t *testing.T) {
	cause := errors.New("xdotool missing")
	err := PlaceTopRight(fakeMonitor{err: cause}, &fakeWindow{})
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want wrapped cause", err)
	}
}
