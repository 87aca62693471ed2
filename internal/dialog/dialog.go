// Package dialog предоставляет системные диалоги приложения.
package dialog

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// FolderPicker открывает системный диалог выбора папки.
type FolderPicker struct{}

// PickFolder показывает диалог и блокируется до выбора.
// Отмена пользователем возвращает пустой путь без ошибки.
func (FolderPicker) PickFolder(title, start string) (string, error) {
	opts := []zenity.Option{
		zenity.Directory(),
		zenity.Title(title),
	}
	if start != "" {
		opts = append(opts, zenity.Filename(start))
	}

	path, err := zenity.SelectFile(opts...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("dialog: select folder: %w", err)
	}
	return path, nil
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	_ = zenity.Error(message, zenity.Title(title), zenity.ErrorIcon)
}
