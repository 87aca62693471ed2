// Package placement вычисляет позицию окна заметки на экране.
package placement

import (
	"errors"
	"fmt"
)

const (
	// WindowWidth - логическая ширина окна заметки. Константа, а не
	// измеренный размер: позиция не зависит от первой отрисовки окна.
	WindowWidth = 520
	// Padding - отступ от верхнего и правого края экрана.
	Padding = 16
)

// ErrNoMonitor возвращается, когда размер монитора неизвестен.
var ErrNoMonitor = errors.New("placement: monitor size unavailable")

// Monitor сообщает размер основного монитора.
type Monitor interface {
	Size() (width, height int, err error)
}

// Positioner перемещает окно.
type Positioner interface {
	SetPosition(x, y int)
}

// TopRight возвращает левый верхний угол окна шириной WindowWidth,
// прижатого к правому верхнему углу монитора шириной monitorWidth.
func TopRight(monitorWidth int) (x, y int) {
	return monitorWidth - WindowWidth - Padding, Padding
}

// PlaceTopRight перемещает w в правый верхний угол m. Если размер монитора
// получить не удалось, окно не двигается и возвращается ошибка с ErrNoMonitor.
func PlaceTopRight(m Monitor, w Positioner) error {
	if m == nil {
		return ErrNoMonitor
	}
	width, _, err := m.Size()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoMonitor, err)
	}
	if width <= 0 {
		return fmt.Errorf("%w: width %d", ErrNoMonitor, width)
	}
	x, y := TopRight(width)
	w.SetPosition(x, y)
	return nil
}
