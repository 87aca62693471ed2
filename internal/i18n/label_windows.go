//go:build windows

package i18n

var autostartLabels = map[Locale]string{
	PtBR: "Iniciar com Windows",
	EN:   "Start with Windows",
}
