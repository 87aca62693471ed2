//go:build !windows && !darwin

package i18n

var autostartLabels = map[Locale]string{
	PtBR: "Iniciar com o sistema",
	EN:   "Start with system",
}
