// Package capture provides the floating quick-note window.
package capture

import (
	"image"
	"image/color"
	"sync"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/rs/zerolog/log"

	"auranote/internal/placement"
)

// Localizer returns UI strings by key.
type Localizer interface {
	T(key string) string
}

// Preferences are the persisted display settings of the window.
type Preferences interface {
	DarkTheme() bool
	ToggleTheme() (bool, error)
	FontSize() float64
	StepFontSize(increase bool) (float64, error)
}

// Palette holds the colors of one theme.
type Palette struct {
	BGColor      color.NRGBA // Background color
	TextColor    color.NRGBA // Text color
	TextDimColor color.NRGBA // Hint text color
	AccentColor  color.NRGBA // Save button color
	ErrorColor   color.NRGBA // Error line color
	PanelColor   color.NRGBA // Editor panel background
}

// Config holds window configuration.
type Config struct {
	Width  int // Window width in dp
	Height int // Window height in dp
	Dark   Palette
	Light  Palette
	// RemSp is the text size in sp of a font size of 1.
	RemSp float64
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:  placement.WindowWidth,
		Height: 260,
		Dark: Palette{
			BGColor:      color.NRGBA{R: 9, G: 9, B: 11, A: 250},
			TextColor:    color.NRGBA{R: 244, G: 244, B: 245, A: 255},
			TextDimColor: color.NRGBA{R: 63, G: 63, B: 70, A: 255},
			AccentColor:  color.NRGBA{R: 34, G: 197, B: 94, A: 255},
			ErrorColor:   color.NRGBA{R: 255, G: 100, B: 100, A: 255},
			PanelColor:   color.NRGBA{R: 24, G: 24, B: 27, A: 255},
		},
		Light: Palette{
			BGColor:      color.NRGBA{R: 250, G: 243, B: 230, A: 250},
			TextColor:    color.NRGBA{R: 94, G: 64, B: 45, A: 255},
			TextDimColor: color.NRGBA{R: 176, G: 160, B: 145, A: 255},
			AccentColor:  color.NRGBA{R: 34, G: 160, B: 80, A: 255},
			ErrorColor:   color.NRGBA{R: 200, G: 50, B: 50, A: 255},
			PanelColor:   color.NRGBA{R: 242, G: 232, B: 214, A: 255},
		},
		RemSp: 16,
	}
}

// Palette returns the palette for the given theme.
func (c Config) Palette(dark bool) Palette {
	if dark {
		return c.Dark
	}
	return c.Light
}

// Window is the quick-capture note window.
//
// Visibility is owned by the gio event loop: the window counts as visible
// while its loop runs, so closing it from the window manager is reflected
// by IsVisible without anyone being told.
type Window struct {
	mu     sync.Mutex
	config Config
	tr     func() Localizer
	prefs  Preferences

	editor   widget.Editor
	saveBtn  widget.Clickable
	closeBtn widget.Clickable
	themeBtn widget.Clickable
	onSubmit func(text string) error

	dark     bool
	fontSize float64
	// focused tracks OS keyboard focus of the window.
	focused bool

	errText      string
	clearPending bool
	focusPending bool
	saving       bool

	pos    *image.Point
	window *app.Window
	// running is true between Show and the end of the event loop.
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a capture window. tr is called on every frame so a locale
// override shows up on the next redraw. prefs may be nil.
func New(cfg Config, tr func() Localizer, prefs Preferences) *Window {
	w := &Window{
		config:   cfg,
		tr:       tr,
		prefs:    prefs,
		dark:     true,
		fontSize: 1.25,
	}
	// Enter submits, Shift+Enter inserts a newline
	w.editor.Submit = true
	return w
}

// OnSubmit sets the callback that persists the note. On success the editor
// is cleared and the window hides; on error the text is kept.
func (w *Window) OnSubmit(fn func(text string) error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onSubmit = fn
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// SetPosition sets where the window appears. It applies to the running
// window immediately and to the next Show otherwise.
func (w *Window) SetPosition(x, y int) {
	w.mu.Lock()
	w.pos = &image.Point{X: x, Y: y}
	running := w.running
	w.mu.Unlock()

	if running {
		go moveWindow(windowTitle, x, y)
	}
}

// Show displays the window (non-blocking).
func (w *Window) Show() {
	w.loadPreferences()

	w.mu.Lock()
	if w.running {
		win := w.window
		w.mu.Unlock()
		if win != nil {
			win.Perform(system.ActionRaise)
		}
		return
	}

	w.running = true
	w.focused = false
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.errText = ""
	stopCh, doneCh, pos := w.stopCh, w.doneCh, w.pos
	w.mu.Unlock()

	go w.runEventLoop(stopCh, doneCh, pos)
}

// Focus raises the window and puts the caret in the editor.
func (w *Window) Focus() {
	w.mu.Lock()
	w.focusPending = true
	win := w.window
	w.mu.Unlock()

	if win != nil {
		win.Perform(system.ActionRaise)
		win.Invalidate()
	}
}

// Hide closes the window without waiting for the event loop to finish.
// Typed text is kept for the next Show.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
}

// dismiss clears the editor and hides the window.
func (w *Window) dismiss() {
	w.mu.Lock()
	w.clearPending = true
	w.errText = ""
	w.mu.Unlock()
	w.Hide()
}

// setFocused records the window focus state. Losing focus dismisses the
// window; it reports whether that happened.
func (w *Window) setFocused(focused bool) bool {
	w.mu.Lock()
	lost := w.focused && !focused && w.running
	w.focused = focused
	w.mu.Unlock()

	if lost {
		go w.dismiss()
	}
	return lost
}

func (w *Window) loadPreferences() {
	if w.prefs == nil {
		return
	}
	dark, size := w.prefs.DarkTheme(), w.prefs.FontSize()

	w.mu.Lock()
	w.dark, w.fontSize = dark, size
	w.mu.Unlock()
}

// toggleTheme flips and persists the theme.
func (w *Window) toggleTheme() {
	if w.prefs == nil {
		w.mu.Lock()
		w.dark = !w.dark
		w.mu.Unlock()
		return
	}
	dark, err := w.prefs.ToggleTheme()
	if err != nil {
		log.Warn().Err(err).Msg("Could not save theme")
	}
	w.mu.Lock()
	w.dark = dark
	w.mu.Unlock()
}

// stepFontSize grows or shrinks the editor text and persists the size.
func (w *Window) stepFontSize(increase bool) {
	if w.prefs == nil {
		return
	}
	size, err := w.prefs.StepFontSize(increase)
	if err != nil {
		log.Warn().Err(err).Msg("Could not save font size")
	}
	w.mu.Lock()
	w.fontSize = size
	w.mu.Unlock()
}

// fontSizeKey maps a shortcut key to a font size step.
func fontSizeKey(name key.Name) (increase, ok bool) {
	switch name {
	case "=", "+":
		return true, true
	case "-", "_":
		return false, true
	}
	return false, false
}

const windowTitle = "AuraNote"

func (w *Window) runEventLoop(stopCh, doneCh chan struct{}, pos *image.Point) {
	defer close(doneCh)

	win := new(app.Window)
	win.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(w.config.Width), unit.Dp(w.config.Height)),
		app.Decorated(false), // Borderless
	)

	w.mu.Lock()
	w.window = win
	w.focusPending = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		// Closed by the window manager rather than Hide
		if w.stopCh == stopCh {
			w.running = false
			w.stopCh = nil
		}
		if w.window == win {
			w.window = nil
		}
		w.mu.Unlock()
	}()

	if pos != nil {
		go moveWindow(windowTitle, pos.X, pos.Y)
	}

	go func() {
		select {
		case <-stopCh:
			win.Perform(system.ActionClose)
		case <-doneCh:
		}
	}()

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			if e.Err != nil {
				log.Warn().Err(e.Err).Msg("Capture window closed with error")
			}
			return
		case app.ConfigEvent:
			w.setFocused(e.Config.Focused)
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context) {
	w.mu.Lock()
	if w.clearPending {
		w.editor.SetText("")
		w.clearPending = false
	}
	focus := w.focusPending
	w.focusPending = false
	view := captureView{
		Palette:  w.config.Palette(w.dark),
		TextSize: unit.Sp(float32(w.fontSize * w.config.RemSp)),
		Dark:     w.dark,
		ErrText:  w.errText,
	}
	w.mu.Unlock()

	if focus {
		gtx.Execute(key.FocusCmd{Tag: &w.editor})
	}

	// Esc clears and hides, Ctrl/Cmd +/- changes the font size
	for {
		event, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: "=", Required: key.ModShortcut, Optional: key.ModShift},
			key.Filter{Name: "+", Required: key.ModShortcut, Optional: key.ModShift},
			key.Filter{Name: "-", Required: key.ModShortcut, Optional: key.ModShift},
			key.Filter{Name: "_", Required: key.ModShortcut, Optional: key.ModShift},
		)
		if !ok {
			break
		}
		e, ok := event.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		if e.Name == key.NameEscape {
			go w.dismiss()
			continue
		}
		if increase, ok := fontSizeKey(e.Name); ok {
			go w.applyAndRedraw(func() { w.stepFontSize(increase) })
		}
	}

	// Enter arrives as a submit event; Shift+Enter is a newline
	for {
		ev, ok := w.editor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			w.submit()
		}
	}

	if w.saveBtn.Clicked(gtx) {
		w.submit()
	}
	if w.closeBtn.Clicked(gtx) {
		go w.dismiss()
	}
	if w.themeBtn.Clicked(gtx) {
		go w.applyAndRedraw(w.toggleTheme)
	}

	drawCaptureView(gtx, view, w.tr(), &w.editor, &w.saveBtn, &w.closeBtn, &w.themeBtn)
}

// applyAndRedraw runs fn off the frame goroutine and requests a frame.
func (w *Window) applyAndRedraw(fn func()) {
	fn()
	w.mu.Lock()
	win := w.window
	w.mu.Unlock()
	if win != nil {
		win.Invalidate()
	}
}

// submit hands the text to the persister off the frame goroutine.
func (w *Window) submit() {
	w.mu.Lock()
	if w.saving || w.onSubmit == nil {
		w.mu.Unlock()
		return
	}
	w.saving = true
	fn := w.onSubmit
	w.mu.Unlock()

	text := w.editor.Text()
	go func() {
		err := fn(text)

		w.mu.Lock()
		w.saving = false
		if err != nil {
			w.errText = err.Error()
		} else {
			w.errText = ""
			w.clearPending = true
		}
		win := w.window
		w.mu.Unlock()

		if err != nil {
			if win != nil {
				win.Invalidate()
			}
			return
		}
		w.Hide()
	}()
}
