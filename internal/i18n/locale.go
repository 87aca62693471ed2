package i18n

import "os"

// hintVars are the POSIX locale variables, checked in this order.
var hintVars = []string{"LANG", "LC_ALL", "LC_MESSAGES"}

// Resolve detects the UI locale from the process environment.
func Resolve() Locale {
	return ResolveFrom(os.LookupEnv)
}

// ResolveFrom detects the UI locale using lookup for environment access.
// The first present, non-empty hint wins; no hint means the default locale.
func ResolveFrom(lookup func(string) (string, bool)) Locale {
	for _, name := range hintVars {
		if v, ok := lookup(name); ok && v != "" {
			return Parse(v)
		}
	}
	for _, hint := range platformHints {
		if v := hint(lookup); v != "" {
			return Parse(v)
		}
	}
	return Default
}
