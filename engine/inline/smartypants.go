package inline

import (
	"regexp"
	"strings"
)

var (
	smartyLeftSingle = regexp.MustCompile(`(^|[-—/(\[{"“\s])'`)
	smartyLeftDouble = regexp.MustCompile(`(^|[-—/(\[{‘\s])"`)
)

// smartypants applies the typographic replacements to plain text: em and
// en dashes, ellipses, and curly quotes. It runs before entity escaping,
// so that straight quotes become typographic ones instead of references.
func smartypants(s string) string {
	s = strings.ReplaceAll(s, "---", "—")
	s = strings.ReplaceAll(s, "--", "–")
	s = strings.ReplaceAll(s, "...", "…")
	s = smartyLeftSingle.ReplaceAllString(s, "${1}‘")
	s = strings.ReplaceAll(s, "'", "’")
	s = smartyLeftDouble.ReplaceAllString(s, "${1}“")
	s = strings.ReplaceAll(s, `"`, "”")
	return s
}
