//go:build darwin

package i18n

var autostartLabels = map[Locale]string{
	PtBR: "Iniciar com macOS",
	EN:   "Start with macOS",
}
