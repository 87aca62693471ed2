// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// Icon - иконка трея (лист заметки).
//
//go:embed icon.png
var Icon []byte
