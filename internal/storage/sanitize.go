package storage

import "regexp"

var (
	unsafeChars = regexp.MustCompile(`[^\w.-]`)
	safeChar    = regexp.MustCompile(`[\w.-]`)
)

// Sanitize reduces an arbitrary client-supplied filename to word
// characters, hyphens and dots, replacing everything else with an
// underscore. Input with no safe characters at all yields the empty
// string; callers substitute their own fallback.
func Sanitize(name string) string {
	if !safeChar.MatchString(name) {
		return ""
	}
	return unsafeChars.ReplaceAllString(name, "_")
}
