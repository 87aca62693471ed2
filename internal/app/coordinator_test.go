package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"auranote/internal/config"
	"auranote/internal/i18n"
)

type fakeWindow struct {
	mu      sync.Mutex
	visible bool
	calls   []string
	x, y    int
}

func (w *fakeWindow) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *fakeWindow) SetPosition(x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "position")
	w.x, w.y = x, y
}

func (w *fakeWindow) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "show")
	w.visible = true
}

func (w *fakeWindow) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "hide")
	w.visible = false
}

func (w *fakeWindow) Focus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, "focus")
}

func (w *fakeWindow) log() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := strings.Join(w.calls, ",")
	w.calls = nil
	return s
}

type fakeMonitor struct {
	width int
	err   error
}

func (m fakeMonitor) Size() (int, int, error) { return m.width, 1080, m.err }

// fakeAutostart имитирует ОС, которая может молча игнорировать запрос.
type fakeAutostart struct {
	enabled   bool
	deny      bool
	enableErr error
}

func (a *fakeAutostart) IsEnabled() bool { return a.enabled }

func (a *fakeAutostart) Enable() error {
	if a.enableErr != nil {
		return a.enableErr
	}
	if !a.deny {
		a.enabled = true
	}
	return nil
}

func (a *fakeAutostart) Disable() error {
	if !a.deny {
		a.enabled = false
	}
	return nil
}

type fakeMenu struct {
	autostart []bool
	mute      []bool
	labels    []i18n.Locale
}

func (m *fakeMenu) SetAutostartChecked(v bool)  { m.autostart = append(m.autostart, v) }
func (m *fakeMenu) SetMuteChecked(v bool)       { m.mute = append(m.mute, v) }
func (m *fakeMenu) Relabel(tr *i18n.Translator) { m.labels = append(m.labels, tr.Locale()) }

type fakePicker struct {
	path string
	err  error
}

func (p fakePicker) PickFolder(title, start string) (string, error) { return p.path, p.err }

type fakeNotifier struct {
	mu     sync.Mutex
	errors []string
	infos  []string
	saved  []bool
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *fakeNotifier) Saved(muted bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.saved = append(n.saved, muted)
}

type fixture struct {
	c        *Coordinator
	window   *fakeWindow
	auto     *fakeAutostart
	menu     *fakeMenu
	store    *config.Store
	notifier *fakeNotifier
	root     string
	quit     int
}

func newFixture(t *testing.T, picker FolderPicker) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		window:   &fakeWindow{},
		auto:     &fakeAutostart{},
		menu:     &fakeMenu{},
		store:    config.NewStore(filepath.Join(root, "cfg", "store.json"), filepath.Join(root, "Documents", "AuraNote")),
		notifier: &fakeNotifier{},
		root:     root,
	}
	f.c = NewCoordinator(Deps{
		Window:    f.window,
		Monitor:   fakeMonitor{width: 1920},
		Autostart: f.auto,
		Picker:    picker,
		Menu:      f.menu,
		Settings:  f.store,
		Notifier:  f.notifier,
		Locale:    i18n.EN,
		OnQuit:    func() { f.quit++ },
		Now:       func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local) },
	})
	return f
}

func TestHotkey_AlternatesHideShow(t *testing.T) {
	f := newFixture(t, nil)

	f.c.handle(Event{Kind: HotkeyPressed})
	if got := f.window.log(); got != "position,show,focus" {
		t.Fatalf("first press: %s", got)
	}
	if f.window.x != 1920-520-16 || f.window.y != 16 {
		t.Errorf("position = (%d,%d)", f.window.x, f.window.y)
	}

	f.c.handle(Event{Kind: HotkeyPressed})
	if got := f.window.log(); got != "hide" {
		t.Fatalf("second press: %s", got)
	}

	f.c.handle(Event{Kind: HotkeyPressed})
	if got := f.window.log(); got != "position,show,focus" {
		t.Fatalf("third press: %s", got)
	}
}

func TestHotkey_ReadsLiveVisibility(t *testing.T) {
	f := newFixture(t, nil)

	f.c.handle(Event{Kind: HotkeyPressed})
	f.window.log()

	// Окно закрыли мимо координатора (кнопкой ОС)
	f.window.Hide()
	f.window.log()

	f.c.handle(Event{Kind: HotkeyPressed})
	if got := f.window.log(); got != "position,show,focus" {
		t.Fatalf("press after external hide: %s", got)
	}
}

func TestTrayClick_NeverHides(t *testing.T) {
	f := newFixture(t, nil)

	f.c.handle(Event{Kind: TrayIconClicked})
	if got := f.window.log(); got != "position,show,focus" {
		t.Fatalf("click while hidden: %s", got)
	}

	f.c.handle(Event{Kind: TrayIconClicked})
	if got := f.window.log(); got != "show,focus" {
		t.Fatalf("click while visible: %s", got)
	}
	if !f.window.IsVisible() {
		t.Error("tray click hid the window")
	}
}

func TestShow_MonitorFailureStillShows(t *testing.T) {
	f := newFixture(t, nil)
	f.c.deps.Monitor = fakeMonitor{err: errors.New("no monitor")}

	f.c.handle(Event{Kind: HotkeyPressed})
	if got := f.window.log(); got != "show,focus" {
		t.Fatalf("got %s", got)
	}
}

func TestToggleAutostart(t *testing.T) {
	f := newFixture(t, nil)

	f.c.handle(Event{Kind: ToggleAutostart})
	if !f.auto.enabled {
		t.Fatal("autostart not enabled")
	}
	f.c.handle(Event{Kind: ToggleAutostart})
	if f.auto.enabled {
		t.Fatal("autostart not disabled")
	}
	if len(f.menu.autostart) != 2 || !f.menu.autostart[0] || f.menu.autostart[1] {
		t.Errorf("menu states = %v", f.menu.autostart)
	}
}

func TestToggleAutostart_SilentDenialReflected(t *testing.T) {
	f := newFixture(t, nil)
	f.auto.deny = true

	f.c.handle(Event{Kind: ToggleAutostart})
	if len(f.menu.autostart) != 1 || f.menu.autostart[0] {
		t.Errorf("menu must show the real (disabled) flag, got %v", f.menu.autostart)
	}
}

func TestToggleAutostart_ErrorNotifiedAndReflected(t *testing.T) {
	f := newFixture(t, nil)
	f.auto.enableErr = errors.New("permission denied")

	f.c.handle(Event{Kind: ToggleAutostart})
	if len(f.notifier.errors) != 1 {
		t.Errorf("errors = %v", f.notifier.errors)
	}
	if len(f.menu.autostart) != 1 || f.menu.autostart[0] {
		t.Errorf("menu states = %v", f.menu.autostart)
	}
}

func TestRefreshMenu_QueriesOS(t *testing.T) {
	f := newFixture(t, nil)
	f.auto.enabled = true
	if err := f.store.SetMuteSound(true); err != nil {
		t.Fatal(err)
	}

	f.c.RefreshMenu()
	if len(f.menu.autostart) != 1 || !f.menu.autostart[0] {
		t.Errorf("autostart = %v", f.menu.autostart)
	}
	if len(f.menu.mute) != 1 || !f.menu.mute[0] {
		t.Errorf("mute = %v", f.menu.mute)
	}
}

func TestToggleMute(t *testing.T) {
	f := newFixture(t, nil)

	f.c.handle(Event{Kind: ToggleMute})
	if !f.store.MuteSound() {
		t.Fatal("mute not persisted")
	}
	f.c.handle(Event{Kind: ToggleMute})
	if f.store.MuteSound() {
		t.Fatal("unmute not persisted")
	}
	if len(f.menu.mute) != 2 || !f.menu.mute[0] || f.menu.mute[1] {
		t.Errorf("menu states = %v", f.menu.mute)
	}
}

func TestConfigureDirectory_AppliedOnDispatch(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, fakePicker{path: dir})

	f.c.handle(Event{Kind: ConfigureDirectory})

	select {
	case ev := <-f.c.events:
		if ev.Kind != directoryChosen || ev.Path != dir {
			t.Fatalf("unexpected event %+v", ev)
		}
		// До обработки события хранилище не меняется
		if got := f.store.SaveDirectory(); got == dir {
			t.Fatal("store written outside dispatch")
		}
		f.c.handle(ev)
	case <-time.After(2 * time.Second):
		t.Fatal("picker result not posted")
	}

	if got := f.store.SaveDirectory(); got != dir {
		t.Errorf("save directory = %q, want %q", got, dir)
	}
	if len(f.notifier.infos) != 1 {
		t.Errorf("infos = %v", f.notifier.infos)
	}
}

func TestConfigureDirectory_CancelIsNoop(t *testing.T) {
	f := newFixture(t, fakePicker{})

	f.c.handle(Event{Kind: ConfigureDirectory})

	select {
	case ev := <-f.c.events:
		t.Fatalf("cancel posted %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
	if _, err := os.Stat(f.store.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("store touched on cancel: %v", err)
	}
}

func TestApplyDirectory_InvalidPathNotified(t *testing.T) {
	f := newFixture(t, nil)

	f.c.handle(Event{Kind: directoryChosen, Path: "relative"})
	if len(f.notifier.errors) != 1 {
		t.Errorf("errors = %v", f.notifier.errors)
	}
	if got := f.store.SaveDirectory(); got != f.store.DefaultDirectory() {
		t.Errorf("save directory = %q", got)
	}
}

func TestSaveNote(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.c.SaveNote("hello"); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	path := filepath.Join(f.store.DefaultDirectory(), "note-2025-01-02-03-04-05.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
	if len(f.notifier.saved) != 1 || f.notifier.saved[0] {
		t.Errorf("saved = %v", f.notifier.saved)
	}
}

func TestSaveNote_EmptyIsSilent(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.c.SaveNote(" \n\t "); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(f.store.DefaultDirectory()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("directory created for empty note: %v", err)
	}
	if len(f.notifier.saved) != 0 {
		t.Errorf("saved = %v", f.notifier.saved)
	}
}

func TestSaveNote_LocaleOverride(t *testing.T) {
	f := newFixture(t, nil)
	f.c.SetLocale("pt_BR.UTF-8")

	if err := f.c.SaveNote("olá"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(f.store.DefaultDirectory(), "nota-2025-01-02-03-04-05.md")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("localized note missing: %v", err)
	}
}

func TestSaveNote_WriteFailureReported(t *testing.T) {
	f := newFixture(t, nil)
	blocker := filepath.Join(f.root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	f.c.deps.Settings = config.NewStore(f.store.Path(), filepath.Join(blocker, "notes"))

	if err := f.c.SaveNote("hello"); err == nil {
		t.Fatal("expected error")
	}
	if len(f.notifier.errors) != 1 {
		t.Errorf("errors = %v", f.notifier.errors)
	}
}

func TestRun_QuitStopsLoop(t *testing.T) {
	f := newFixture(t, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- f.c.Run(context.Background()) }()

	if err := f.c.Post(Event{Kind: HotkeyPressed}); err != nil {
		t.Fatal(err)
	}
	if err := f.c.Post(Event{Kind: Quit}); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	if f.quit != 1 {
		t.Errorf("OnQuit called %d times", f.quit)
	}
	if !f.window.IsVisible() {
		t.Error("hotkey before quit was not processed")
	}
	if err := f.c.Post(Event{Kind: HotkeyPressed}); !errors.Is(err, ErrStopped) {
		t.Errorf("Post after quit = %v", err)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- f.c.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	select {
	case <-f.c.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestEventKind_String(t *testing.T) {
	if HotkeyPressed.String() != "hotkey" || EventKind(99).String() != "event(99)" {
		t.Error("unexpected names")
	}
}

func TestChangeLocale_SwapsSnapshotPersistsAndRelabels(t *testing.T) {
	f := newFixture(t, nil)
	before := f.c.Translator()

	f.c.handle(Event{Kind: ChangeLocale, Locale: i18n.PtBR})

	if got := f.c.Translator().Locale(); got != i18n.PtBR {
		t.Fatalf("locale = %q", got)
	}
	if before.Locale() != i18n.EN {
		t.Error("previous snapshot mutated")
	}
	if got := f.store.Locale(); got != "pt-BR" {
		t.Errorf("stored locale = %q", got)
	}
	if len(f.menu.labels) != 1 || f.menu.labels[0] != i18n.PtBR {
		t.Errorf("relabel calls = %v", f.menu.labels)
	}

	if err := f.c.SaveNote("oi"); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(f.store.SaveDirectory(), "nota-2025-01-02-03-04-05.md")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("note not saved with localized prefix: %v", err)
	}
}
