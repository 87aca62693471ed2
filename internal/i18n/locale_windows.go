//go:build windows

package i18n

import "github.com/jeandeaual/go-locale"

// platformHints are consulted after the POSIX variables.
// Windows rarely sets LANG, so fall back to the user locale of the OS.
var platformHints = []func(lookup func(string) (string, bool)) string{
	envHint("LANGUAGE"),
	envHint("LOCALE"),
	func(func(string) (string, bool)) string {
		tag, err := locale.GetLocale()
		if err != nil {
			return ""
		}
		return tag
	},
}

func envHint(name string) func(func(string) (string, bool)) string {
	return func(lookup func(string) (string, bool)) string {
		v, _ := lookup(name)
		return v
	}
}
