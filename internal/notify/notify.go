// Package notify предоставляет системные уведомления и звук подтверждения.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog/log"
)

// maxMessage - длина сообщения, после которой текст обрезается.
const maxMessage = 100

// Localizer возвращает строку интерфейса по ключу.
type Localizer interface {
	T(key string) string
}

// Notifier отправляет системные уведомления.
type Notifier struct {
	appName string
	tr      func() Localizer
	notify  func(title, message string) error
	beep    func() error
}

// New создаёт Notifier. tr вызывается при каждом уведомлении, чтобы
// подхватывать смену языка.
func New(appName string, tr func() Localizer) *Notifier {
	return &Notifier{
		appName: appName,
		tr:      tr,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Saved подтверждает сохранение заметки звуком, если он не выключен.
func (n *Notifier) Saved(muted bool) {
	if muted {
		return
	}
	if err := n.beep(); err != nil {
		log.Debug().Err(err).Msg("Звук подтверждения недоступен")
	}
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.send(n.appName+": "+n.tr().T("notify.error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	n.send(n.appName, msg)
}

func (n *Notifier) send(title, message string) {
	if r := []rune(message); len(r) > maxMessage {
		message = string(r[:maxMessage]) + "..."
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if err := n.notify(title, message); err != nil {
		log.Debug().Err(err).Msg("Уведомление не отправлено")
	}
}
