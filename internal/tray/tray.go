// Package tray предоставляет системный трей с меню.
package tray

import (
	"sync"

	"github.com/energye/systray"

	"auranote/internal/i18n"
)

// Callbacks содержит обработчики событий трея. Обработчики должны
// возвращаться быстро: они вызываются из потока трея.
type Callbacks struct {
	OnIconClick          func()
	OnConfigureDirectory func()
	OnAutostartToggle    func()
	OnMuteToggle         func()
	OnLocaleSelect       func(l i18n.Locale)
	OnQuit               func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	icon      []byte
	callbacks Callbacks

	mu           sync.Mutex
	tr           *i18n.Translator
	configDirBtn *systray.MenuItem
	autostartOn  *systray.MenuItem
	muteOn       *systray.MenuItem
	languageMenu *systray.MenuItem
	languages    map[i18n.Locale]*systray.MenuItem
	quitBtn      *systray.MenuItem
}

// New создаёт новый Tray.
func New(tr *i18n.Translator, icon []byte, callbacks Callbacks) *Tray {
	return &Tray{
		tr:        tr,
		icon:      icon,
		callbacks: callbacks,
		languages: make(map[i18n.Locale]*systray.MenuItem),
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(t.icon)

	// Левый клик - показать окно, правый - меню
	systray.SetOnClick(func(menu systray.IMenu) {
		call(t.callbacks.OnIconClick)
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		_ = menu.ShowMenu()
	})

	t.mu.Lock()
	defer t.mu.Unlock()

	// Папка заметок
	t.configDirBtn = systray.AddMenuItem("", "")
	t.configDirBtn.Click(func() { call(t.callbacks.OnConfigureDirectory) })

	// Автозапуск: состояние выставляет координатор по данным ОС
	t.autostartOn = systray.AddMenuItemCheckbox("", "", false)
	t.autostartOn.Click(func() { call(t.callbacks.OnAutostartToggle) })

	// Звук
	t.muteOn = systray.AddMenuItemCheckbox("", "", false)
	t.muteOn.Click(func() { call(t.callbacks.OnMuteToggle) })

	// Язык: названия языков не переводятся
	t.languageMenu = systray.AddMenuItem("", "")
	for _, l := range i18n.AvailableLocales() {
		l := l
		item := t.languageMenu.AddSubMenuItemCheckbox(i18n.LanguageName(l), "", false)
		item.Click(func() {
			if t.callbacks.OnLocaleSelect != nil {
				t.callbacks.OnLocaleSelect(l)
			}
		})
		t.languages[l] = item
	}

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem("", "")
	t.quitBtn.Click(func() { call(t.callbacks.OnQuit) })

	t.relabel()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Relabel обновляет все тексты меню на языке tr.
func (t *Tray) Relabel(tr *i18n.Translator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tr = tr
	t.relabel()
}

func (t *Tray) relabel() {
	if t.quitBtn == nil {
		// Меню ещё не построено, onReady применит t.tr
		return
	}
	systray.SetTitle(t.tr.T("app.name"))
	systray.SetTooltip(t.tr.T("app.tooltip"))

	t.configDirBtn.SetTitle(t.tr.T("menu.config_dir"))
	t.configDirBtn.SetTooltip(t.tr.T("menu.config_dir_hint"))
	t.autostartOn.SetTitle(t.tr.T("menu.autostart"))
	t.muteOn.SetTitle(t.tr.T("menu.mute_sound"))
	t.languageMenu.SetTitle(t.tr.T("menu.language"))
	t.quitBtn.SetTitle(t.tr.T("menu.quit"))

	for l, item := range t.languages {
		setChecked(item, l == t.tr.Locale())
	}
}

// SetAutostartChecked обновляет флажок автозапуска.
func (t *Tray) SetAutostartChecked(checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	setChecked(t.autostartOn, checked)
}

// SetMuteChecked обновляет флажок звука.
func (t *Tray) SetMuteChecked(checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	setChecked(t.muteOn, checked)
}

func setChecked(item *systray.MenuItem, checked bool) {
	if item == nil {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
