// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"auranote/embedded"
	"auranote/internal/autostart"
	"auranote/internal/capture"
	"auranote/internal/config"
	"auranote/internal/dialog"
	"auranote/internal/hotkey"
	"auranote/internal/i18n"
	"auranote/internal/notify"
	"auranote/internal/tray"
)

// Options - параметры запуска.
type Options struct {
	// Locale переопределяет язык окружения (например, "pt-BR").
	Locale string
}

// StartupError - ошибка, после которой приложение не может работать.
// Message уже переведено и готово для показа пользователю.
type StartupError struct {
	Message string
	Err     error
}

func (e *StartupError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// App представляет главное приложение.
type App struct {
	store     *config.Store
	coord     *Coordinator
	captureWn *capture.Window
	tray      *tray.Tray
	hotkey    *hotkey.Handler

	cancel context.CancelFunc

	mu       sync.Mutex
	fatalErr error
}

// New создаёт новое приложение.
func New(opts Options) (*App, error) {
	store, err := config.New()
	if err != nil {
		return nil, err
	}

	// Флаг важнее выбора в меню, выбор в меню важнее окружения
	locale := i18n.Resolve()
	if saved := store.Locale(); saved != "" {
		locale = i18n.Parse(saved)
	}
	if opts.Locale != "" {
		locale = i18n.Parse(opts.Locale)
	}
	log.Info().Str("locale", string(locale)).Str("store", store.Path()).Msg("Инициализация")

	if len(embedded.Icon) == 0 {
		return nil, &StartupError{Message: i18n.New(locale).T("error.icon_load")}
	}

	a := &App{store: store}

	// Переводы читаются через координатор, поэтому он объявлен заранее
	var coord *Coordinator
	localizer := func() *i18n.Translator {
		if coord == nil {
			return i18n.New(locale)
		}
		return coord.Translator()
	}

	notifier := notify.New(localizer().T("app.name"), func() notify.Localizer { return localizer() })
	a.captureWn = capture.New(capture.DefaultConfig(), func() capture.Localizer { return localizer() }, store)

	autostartMgr, err := autostart.New(config.AppID, localizer().T("app.name"))
	if err != nil {
		// Без пути к бинарнику автозапуск невозможен, но заметки работают
		log.Warn().Err(err).Msg("Автозапуск недоступен")
	}

	a.tray = tray.New(localizer(), embedded.Icon, tray.Callbacks{
		OnIconClick:          func() { a.post(TrayIconClicked) },
		OnConfigureDirectory: func() { a.post(ConfigureDirectory) },
		OnAutostartToggle:    func() { a.post(ToggleAutostart) },
		OnMuteToggle:         func() { a.post(ToggleMute) },
		OnLocaleSelect:       func(l i18n.Locale) { a.postEvent(Event{Kind: ChangeLocale, Locale: l}) },
		OnQuit:               func() { a.post(Quit) },
	})

	a.hotkey = hotkey.New(func() { a.post(HotkeyPressed) })

	deps := Deps{
		Window:   a.captureWn,
		Monitor:  capture.ScreenMonitor{},
		Picker:   dialog.FolderPicker{},
		Menu:     a.tray,
		Settings: store,
		Notifier: notifier,
		Locale:   locale,
		OnQuit:   a.shutdown,
	}
	// Nil-указатель в интерфейсе не равен nil, поэтому только явно
	if autostartMgr != nil {
		deps.Autostart = autostartMgr
	}
	coord = NewCoordinator(deps)
	a.coord = coord

	a.captureWn.OnSubmit(coord.SaveNote)

	return a, nil
}

// Coordinator возвращает координатор приложения.
func (a *App) Coordinator() *Coordinator {
	return a.coord
}

func (a *App) post(kind EventKind) {
	a.postEvent(Event{Kind: kind})
}

func (a *App) postEvent(ev Event) {
	if err := a.coord.Post(ev); err != nil {
		log.Debug().Err(err).Stringer("event", ev.Kind).Msg("Событие после остановки")
	}
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	a.tray.Run(func() {
		// Регистрируем горячую клавишу после инициализации трея
		if err := a.hotkey.Register(hotkey.Default); err != nil {
			msg := a.coord.Translator().T("error.shortcut")
			log.Error().Err(err).Str("combo", hotkey.Default.String()).Msg(msg)
			a.setFatal(&StartupError{Message: msg, Err: err})
			a.tray.Quit()
			return
		}

		a.coord.RefreshMenu()

		go func() {
			if err := a.coord.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("Цикл событий завершился с ошибкой")
			}
		}()

		log.Info().Str("hotkey", hotkey.Default.String()).Msg("Приложение запущено")
	})

	return a.fatal()
}

// shutdown вызывается координатором при Quit.
func (a *App) shutdown() {
	log.Info().Msg("Завершение работы")
	if err := a.hotkey.Unregister(); err != nil {
		log.Warn().Err(err).Msg("Не удалось снять горячую клавишу")
	}
	a.captureWn.Hide()
	a.tray.Quit()
}

func (a *App) setFatal(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fatalErr = err
}

func (a *App) fatal() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fatalErr != nil {
		return fmt.Errorf("app: %w", a.fatalErr)
	}
	return nil
}
