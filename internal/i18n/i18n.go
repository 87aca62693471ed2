// Package i18n provides internationalization support.
//
// A Translator is an immutable snapshot of the active locale. Overriding the
// locale means building a new Translator and handing it to whoever owns the
// old one; nothing in this package is mutated after init.
package i18n

import "strings"

// Locale represents a UI language.
type Locale string

const (
	PtBR Locale = "pt-BR"
	EN   Locale = "en"
)

// Default is used when no locale hint matches and as the lookup fallback.
const Default = EN

// Parse maps a locale code (pt_BR.UTF-8, pt-PT, en_US, ...) to a supported Locale.
// Anything that does not start with "pt" resolves to the default locale.
func Parse(code string) Locale {
	if strings.HasPrefix(strings.ToLower(code), "pt") {
		return PtBR
	}
	return Default
}

// Translator looks up UI strings for a fixed locale.
type Translator struct {
	locale Locale
	table  map[string]map[Locale]string
}

// New creates a translator for the given locale.
func New(locale Locale) *Translator {
	return &Translator{locale: locale, table: messages}
}

// Locale returns the locale the translator was built for.
func (t *Translator) Locale() Locale {
	return t.locale
}

// T returns the translation for the given key.
// Fallback chain: current locale, default locale, the key itself.
func (t *Translator) T(key string) string {
	variants, ok := t.table[key]
	if !ok {
		return key
	}
	if s, ok := variants[t.locale]; ok {
		return s
	}
	if s, ok := variants[Default]; ok {
		return s
	}
	return key
}

// AvailableLocales returns list of supported locales in menu order.
func AvailableLocales() []Locale {
	return []Locale{PtBR, EN}
}

// LanguageName returns display name for a locale.
func LanguageName(l Locale) string {
	switch l {
	case PtBR:
		return "Português (Brasil)"
	case EN:
		return "English"
	default:
		return string(l)
	}
}

// Keys returns every message key known to the table.
func Keys() []string {
	keys := make([]string, 0, len(messages))
	for k := range messages {
		keys = append(keys, k)
	}
	return keys
}

// messages is read-only after package init.
var messages = map[string]map[Locale]string{
	// App
	"app.name":    {PtBR: "AuraNote", EN: "AuraNote"},
	"app.tooltip": {PtBR: "AuraNote - notas rápidas", EN: "AuraNote - quick notes"},

	// Tray menu
	"menu.config_dir":      {PtBR: "Configurar diretório...", EN: "Configure directory..."},
	"menu.config_dir_hint": {PtBR: "Escolher onde as notas são salvas", EN: "Choose where notes are saved"},
	"menu.autostart":       autostartLabels,
	"menu.mute_sound":      {PtBR: "Mutar som", EN: "Mute sound"},
	"menu.language":        {PtBR: "Idioma", EN: "Language"},
	"menu.quit":            {PtBR: "Sair do AuraNote", EN: "Quit AuraNote"},

	// Dialogs
	"dialog.choose_dir": {PtBR: "Escolha a pasta das notas", EN: "Choose the notes folder"},

	// Capture window
	"capture.title": {PtBR: "AuraNote", EN: "AuraNote"},
	"capture.hint":  {PtBR: "No que você está pensando?", EN: "What's on your mind?"},
	"capture.save":  {PtBR: "Salvar (Enter)", EN: "Save (Enter)"},

	// Notifications
	"notify.dir_changed": {PtBR: "Diretório das notas alterado", EN: "Notes directory changed"},
	"notify.error":       {PtBR: "Erro", EN: "Error"},

	// Errors
	"error.monitor_size": {PtBR: "Não foi possível obter o tamanho do monitor", EN: "Could not get monitor size"},
	"error.icon_load":    {PtBR: "Não foi possível carregar o ícone padrão", EN: "Could not load default icon"},
	"error.shortcut":     {PtBR: "Erro ao registrar atalho", EN: "Error registering shortcut"},
	"error.save_note":    {PtBR: "Não foi possível salvar a nota", EN: "Could not save the note"},
	"error.save_dir":     {PtBR: "Não foi possível salvar o diretório", EN: "Could not save the directory"},
	"error.autostart":    {PtBR: "Não foi possível alterar a inicialização automática", EN: "Could not change launch at login"},

	// Files
	"file.note_prefix": {PtBR: "nota", EN: "note"},
}
