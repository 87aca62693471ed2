// Package hotkey предоставляет глобальную горячую клавишу.
package hotkey

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl Modifier = "ctrl"
	ModAlt  Modifier = "alt"
)

// Key представляет клавишу.
type Key string

// Combo - сочетание модификаторов и клавиши.
type Combo struct {
	Modifiers []Modifier
	Key       Key
}

// Default - сочетание для показа/скрытия окна заметки: Ctrl+Alt+K.
var Default = Combo{
	Modifiers: []Modifier{ModCtrl, ModAlt},
	Key:       "k",
}

// String возвращает строковое представление горячей клавиши.
func (c Combo) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(c.Key))
	return strings.Join(parts, "+")
}

// debounceInterval - защита от key repeat.
const debounceInterval = 300 * time.Millisecond

// Handler обрабатывает события горячей клавиши.
type Handler struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	onPress func()
	stopCh  chan struct{}
}

// New создаёт обработчик горячей клавиши.
func New(onPress func()) *Handler {
	return &Handler{onPress: onPress}
}

// convert переводит Combo в модификаторы и клавишу библиотеки.
func convert(c Combo) ([]hotkey.Modifier, hotkey.Key, error) {
	mods := make([]hotkey.Modifier, 0, len(c.Modifiers))
	for _, m := range c.Modifiers {
		mod, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("hotkey: unknown modifier %q", m)
		}
		mods = append(mods, mod)
	}
	key, ok := keyMap[Key(strings.ToLower(string(c.Key)))]
	if !ok {
		return nil, 0, fmt.Errorf("hotkey: unknown key %q", c.Key)
	}
	return mods, key, nil
}

// Register регистрирует горячую клавишу. Ошибка означает, что сочетание
// занято или ОС не дала доступ.
func (h *Handler) Register(c Combo) error {
	log.Info().Str("combo", c.String()).Msg("Регистрация горячей клавиши")

	mods, key, err := convert(c)
	if err != nil {
		return err
	}

	if err := h.Unregister(); err != nil {
		log.Warn().Err(err).Msg("Не удалось снять предыдущую регистрацию")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("hotkey: register %s: %w", c, err)
	}

	h.hk = hk
	h.stopCh = make(chan struct{})

	log.Info().Str("combo", c.String()).Msg("Горячая клавиша успешно зарегистрирована")
	go h.listen(hk, h.stopCh)
	return nil
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var lastKeydown time.Time

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if h.onPress != nil {
				h.onPress()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Unregister отменяет регистрацию горячей клавиши.
func (h *Handler) Unregister() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}

	if h.hk != nil {
		err := h.hk.Unregister()
		h.hk = nil
		return err
	}
	return nil
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// keyMap маппинг Key -> hotkey.Key
var keyMap = map[Key]hotkey.Key{
	"k": hotkey.KeyK,
}
