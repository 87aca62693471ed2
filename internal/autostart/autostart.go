// Package autostart управляет запуском приложения при входе в систему.
//
// Флаг хранится в ОС (LaunchAgent, XDG autostart, ярлык автозагрузки) и
// каждый раз читается заново.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	goautostart "github.com/emersion/go-autostart"
	"github.com/rs/zerolog/log"
)

// Manager включает и выключает автозапуск.
type Manager struct {
	app *goautostart.App
}

// New создаёт Manager для текущего исполняемого файла.
func New(name, displayName string) (*Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("autostart: locate executable: %w", err)
	}
	// Резолвим симлинки, чтобы запись в автозагрузке пережила обновление ссылки
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return NewWithExec(name, displayName, []string{exe}), nil
}

// NewWithExec создаёт Manager с явной командой запуска.
func NewWithExec(name, displayName string, exec []string) *Manager {
	return &Manager{
		app: &goautostart.App{
			Name:        name,
			DisplayName: displayName,
			Exec:        exec,
		},
	}
}

// IsEnabled спрашивает ОС, включён ли автозапуск.
func (m *Manager) IsEnabled() bool {
	return m.app.IsEnabled()
}

// Enable включает автозапуск.
func (m *Manager) Enable() error {
	if err := m.app.Enable(); err != nil {
		return fmt.Errorf("autostart: enable: %w", err)
	}
	log.Info().Str("app", m.app.Name).Msg("Автозапуск включён")
	return nil
}

// Disable выключает автозапуск.
func (m *Manager) Disable() error {
	if err := m.app.Disable(); err != nil {
		return fmt.Errorf("autostart: disable: %w", err)
	}
	log.Info().Str("app", m.app.Name).Msg("Автозапуск выключен")
	return nil
}
