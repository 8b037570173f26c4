// Package pathmatch compiles annotation path globs into anchored matchers.
//
// The dialect is deliberately small: "*" matches any run of characters
// except "/", "**" additionally crosses "/" boundaries, "\*" is a literal
// asterisk and "\\" is a literal backslash. Every other character matches
// itself. A matcher built from several patterns matches when any one of
// them matches, and every pattern is anchored at both ends of the path.
package pathmatch

import (
	"regexp"
	"strings"
)

// Matcher evaluates slash-separated relative paths against compiled patterns.
type Matcher struct {
	// re is nil when no pattern compiled; such a matcher matches nothing.
	re *regexp.Regexp
}

// Compile builds a matcher from one or more glob patterns combined via OR.
//
// Patterns are validated upstream at annotation construction time, so a
// compile failure here is not surfaced: the resulting matcher simply
// matches nothing.
func Compile(patterns ...string) *Matcher {
	if len(patterns) == 0 {
		return &Matcher{}
	}

	alternatives := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		alternatives = append(alternatives, translate(pattern))
	}

	re, err := regexp.Compile(`\A(?:` + strings.Join(alternatives, "|") + `)\z`)
	if err != nil {
		return &Matcher{}
	}

	return &Matcher{re: re}
}

// Matches reports whether the whole path matches any compiled pattern.
// Paths reaching outside the matcher's scope never match.
func (m *Matcher) Matches(path string) bool {
	if m == nil || m.re == nil {
		return false
	}

	if path == ".." || strings.HasPrefix(path, "../") || strings.HasPrefix(path, "/") {
		return false
	}

	return m.re.MatchString(path)
}

// translate converts one glob pattern into a regexp body, left to right.
func translate(pattern string) string {
	var b strings.Builder

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '\\':
			// "\*" and "\\" escape the next byte; a trailing or unknown
			// escape keeps the backslash literal.
			if i+1 < len(pattern) && (pattern[i+1] == '*' || pattern[i+1] == '\\') {
				b.WriteString(regexp.QuoteMeta(string(pattern[i+1])))
				i++
				continue
			}

			b.WriteString(regexp.QuoteMeta(`\`))
		case '*':
			// Two adjacent unescaped "*" form a globstar crossing "/".
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				// "**/" must also match zero segments, so the slash is
				// folded into the optional group.
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString(`(?:.*/)?`)
					i += 2
					continue
				}

				b.WriteString(`.*`)
				i++
				continue
			}

			b.WriteString(`[^/]*`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	return b.String()
}
