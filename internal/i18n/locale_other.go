//go:build !windows

package i18n

// platformHints are empty on POSIX systems: LANG and LC_* are authoritative.
var platformHints []func(lookup func(string) (string, bool)) string
