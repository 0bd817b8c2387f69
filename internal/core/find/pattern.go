// Package find implements pattern compilation, scoped search with
// wrap-around and template-based replacement over the document.
package find

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects how a pattern string is interpreted.
type Mode int

const (
	// ModeRegex treats the pattern as a regular expression.
	ModeRegex Mode = iota
	// ModeWildcard treats the pattern as a glob-style wildcard where *
	// matches any run and ? matches any single character.
	ModeWildcard
)

// PatternError reports a pattern that failed to compile. It is a
// recoverable input error: the UI shows it and keeps running.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// wildcardSpecials are the regex metacharacters escaped during wildcard
// translation. * and ? are absent: they are the wildcard operators.
const wildcardSpecials = `.^$+|()[]{}\`

// WildcardToRegex rewrites a wildcard pattern into a regular expression:
// * becomes .*, ? becomes ., everything else matches literally.
func WildcardToRegex(pattern string) string {
	var sb strings.Builder
	for _, r := range pattern {
		switch {
		case r == '*':
			sb.WriteString(".*")
		case r == '?':
			sb.WriteByte('.')
		case strings.ContainsRune(wildcardSpecials, r):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Compile builds the matcher for a pattern. Case-insensitivity is the
// default and is applied as a (?i) prefix, so an explicit inline flag in
// the pattern still wins.
func Compile(pattern string, mode Mode, caseSensitive bool) (*regexp.Regexp, error) {
	expr := pattern
	if mode == ModeWildcard {
		expr = WildcardToRegex(pattern)
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// isMultiline reports whether a pattern is meant to cross line
// boundaries: it contains a literal newline or the \n escape.
func isMultiline(pattern string) bool {
	return strings.Contains(pattern, "\n") || strings.Contains(pattern, `\n`)
}
