package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"auranote/internal/i18n"
	"auranote/internal/notes"
	"auranote/internal/placement"
)

// ErrStopped возвращается из Post после завершения цикла событий.
var ErrStopped = errors.New("app: coordinator stopped")

// EventKind - тип события координатора.
type EventKind int

const (
	HotkeyPressed EventKind = iota
	TrayIconClicked
	ConfigureDirectory
	ToggleAutostart
	ToggleMute
	ChangeLocale
	Quit

	// directoryChosen публикуется горутиной диалога выбора папки.
	directoryChosen
)

func (k EventKind) String() string {
	switch k {
	case HotkeyPressed:
		return "hotkey"
	case TrayIconClicked:
		return "tray_click"
	case ConfigureDirectory:
		return "configure_directory"
	case ToggleAutostart:
		return "toggle_autostart"
	case ToggleMute:
		return "toggle_mute"
	case ChangeLocale:
		return "change_locale"
	case Quit:
		return "quit"
	case directoryChosen:
		return "directory_chosen"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event - событие для цикла координатора.
type Event struct {
	Kind   EventKind
	Path   string      // только для directoryChosen
	Locale i18n.Locale // только для ChangeLocale
}

// Window - окно быстрой заметки. Видимость читается у окна при каждом
// событии, координатор её не кэширует.
type Window interface {
	IsVisible() bool
	SetPosition(x, y int)
	Show()
	Hide()
	Focus()
}

// Autostart - флаг автозапуска, которым владеет ОС.
type Autostart interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// FolderPicker открывает диалог выбора папки. Блокирующий вызов.
// Пустой путь без ошибки означает отмену.
type FolderPicker interface {
	PickFolder(title, start string) (string, error)
}

// Menu - отображение состояния в меню трея.
type Menu interface {
	SetAutostartChecked(checked bool)
	SetMuteChecked(checked bool)
	Relabel(tr *i18n.Translator)
}

// Settings - хранилище настроек.
type Settings interface {
	notes.DirectoryResolver
	SetSaveDirectory(dir string) error
	MuteSound() bool
	ToggleMuteSound() (bool, error)
	SetLocale(code string) error
}

// Notifier показывает уведомления пользователю.
type Notifier interface {
	Error(msg string)
	Info(msg string)
	Saved(muted bool)
}

// Deps - зависимости координатора.
type Deps struct {
	Window    Window
	Monitor   placement.Monitor
	Autostart Autostart
	Picker    FolderPicker
	Menu      Menu
	Settings  Settings
	Notifier  Notifier
	Locale    i18n.Locale
	OnQuit    func()
	Now       func() time.Time
}

// Coordinator связывает события горячей клавиши, трея и меню с окном,
// хранилищем и автозапуском. Вся логика состояний выполняется в одной
// горутине Run.
type Coordinator struct {
	deps   Deps
	tr     atomic.Pointer[i18n.Translator]
	events chan Event

	stopOnce sync.Once
	done     chan struct{}
}

// NewCoordinator создаёт координатор.
func NewCoordinator(deps Deps) *Coordinator {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Locale == "" {
		deps.Locale = i18n.Default
	}
	c := &Coordinator{
		deps:   deps,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	c.tr.Store(i18n.New(deps.Locale))
	return c
}

// Translator возвращает текущий снимок переводов.
func (c *Coordinator) Translator() *i18n.Translator {
	return c.tr.Load()
}

// SetLocale заменяет снимок переводов целиком.
func (c *Coordinator) SetLocale(code string) {
	tr := i18n.New(i18n.Parse(code))
	c.tr.Store(tr)
	log.Info().Str("locale", string(tr.Locale())).Msg("Язык интерфейса изменён")
}

// changeLocale - выбор языка в меню: новый снимок, сохранение и подписи меню.
func (c *Coordinator) changeLocale(l i18n.Locale) {
	c.SetLocale(string(l))
	tr := c.Translator()
	if err := c.deps.Settings.SetLocale(string(tr.Locale())); err != nil {
		log.Warn().Err(err).Msg("Не удалось сохранить язык")
	}
	if c.deps.Menu != nil {
		c.deps.Menu.Relabel(tr)
	}
}

// Post ставит событие в очередь. Вызывается из колбэков ОС и должен
// возвращаться быстро.
func (c *Coordinator) Post(ev Event) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrStopped
	}
}

// Done закрывается после обработки Quit.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Run обрабатывает события до Quit или отмены контекста.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.stop()
			return ctx.Err()
		case ev := <-c.events:
			if c.handle(ev) {
				return nil
			}
		}
	}
}

func (c *Coordinator) stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// handle выполняет переход. Возвращает true для терминального события.
func (c *Coordinator) handle(ev Event) bool {
	log.Debug().Stringer("event", ev.Kind).Msg("Событие")

	switch ev.Kind {
	case HotkeyPressed:
		c.toggleWindow()
	case TrayIconClicked:
		c.bringToFront()
	case ConfigureDirectory:
		c.pickDirectory()
	case directoryChosen:
		c.applyDirectory(ev.Path)
	case ToggleAutostart:
		c.toggleAutostart()
	case ToggleMute:
		c.toggleMute()
	case ChangeLocale:
		c.changeLocale(ev.Locale)
	case Quit:
		c.stop()
		if c.deps.OnQuit != nil {
			c.deps.OnQuit()
		}
		return true
	default:
		log.Warn().Stringer("event", ev.Kind).Msg("Неизвестное событие")
	}
	return false
}

// toggleWindow - горячая клавиша: настоящий переключатель.
func (c *Coordinator) toggleWindow() {
	if c.deps.Window.IsVisible() {
		c.deps.Window.Hide()
		return
	}
	c.showPlaced()
}

// bringToFront - клик по иконке трея: всегда показать, никогда не скрывать.
func (c *Coordinator) bringToFront() {
	if c.deps.Window.IsVisible() {
		c.deps.Window.Show()
		c.deps.Window.Focus()
		return
	}
	c.showPlaced()
}

// showPlaced позиционирует окно и только потом показывает его.
func (c *Coordinator) showPlaced() {
	if err := placement.PlaceTopRight(c.deps.Monitor, c.deps.Window); err != nil {
		log.Warn().Err(err).Msg(c.Translator().T("error.monitor_size"))
	}
	c.deps.Window.Show()
	c.deps.Window.Focus()
}

// pickDirectory открывает диалог в отдельной горутине, результат
// возвращается в очередь событий.
func (c *Coordinator) pickDirectory() {
	if c.deps.Picker == nil {
		return
	}
	title := c.Translator().T("dialog.choose_dir")
	start := c.deps.Settings.SaveDirectory()

	go func() {
		path, err := c.deps.Picker.PickFolder(title, start)
		if err != nil {
			log.Warn().Err(err).Msg("Ошибка диалога выбора папки")
			return
		}
		if path == "" {
			log.Debug().Msg("Выбор папки отменён")
			return
		}
		if err := c.Post(Event{Kind: directoryChosen, Path: path}); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("Выбор папки после остановки")
		}
	}()
}

func (c *Coordinator) applyDirectory(path string) {
	if err := c.deps.Settings.SetSaveDirectory(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Не удалось сохранить папку")
		c.notifyError(c.Translator().T("error.save_dir"))
		return
	}
	log.Info().Str("path", path).Msg("Папка заметок изменена")
	if c.deps.Notifier != nil {
		c.deps.Notifier.Info(c.Translator().T("notify.dir_changed") + ": " + path)
	}
}

// toggleAutostart переключает автозапуск и перечитывает флаг у ОС:
// ОС может молча отказать, меню должно показать реальное состояние.
func (c *Coordinator) toggleAutostart() {
	if c.deps.Autostart == nil {
		return
	}

	var err error
	if c.deps.Autostart.IsEnabled() {
		err = c.deps.Autostart.Disable()
	} else {
		err = c.deps.Autostart.Enable()
	}
	if err != nil {
		log.Warn().Err(err).Msg("Не удалось изменить автозапуск")
		c.notifyError(c.Translator().T("error.autostart"))
	}

	c.refreshAutostart()
}

func (c *Coordinator) toggleMute() {
	if _, err := c.deps.Settings.ToggleMuteSound(); err != nil {
		log.Warn().Err(err).Msg("Не удалось сохранить настройку звука")
	}
	c.refreshMute()
}

// RefreshMenu выставляет флажки меню по реальному состоянию.
func (c *Coordinator) RefreshMenu() {
	c.refreshAutostart()
	c.refreshMute()
}

func (c *Coordinator) refreshAutostart() {
	if c.deps.Menu == nil || c.deps.Autostart == nil {
		return
	}
	enabled := c.deps.Autostart.IsEnabled()
	log.Debug().Bool("enabled", enabled).Msg("Автозапуск")
	c.deps.Menu.SetAutostartChecked(enabled)
}

func (c *Coordinator) refreshMute() {
	if c.deps.Menu == nil {
		return
	}
	c.deps.Menu.SetMuteChecked(c.deps.Settings.MuteSound())
}

// SaveNote - единственная команда, доступная окну заметки.
func (c *Coordinator) SaveNote(content string) error {
	tr := c.Translator()
	persister := notes.New(c.deps.Settings, tr.T("file.note_prefix")).WithClock(c.deps.Now)

	path, err := persister.Save(content)
	if err != nil {
		log.Error().Err(err).Msg("Не удалось сохранить заметку")
		c.notifyError(tr.T("error.save_note") + ": " + err.Error())
		return err
	}
	if path == "" {
		return nil
	}

	if c.deps.Notifier != nil {
		c.deps.Notifier.Saved(c.deps.Settings.MuteSound())
	}
	return nil
}

func (c *Coordinator) notifyError(msg string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Error(msg)
	}
}
