// Package licenses wraps the external SPDX license-expression parser.
//
// Expressions are treated as opaque once parsed: the rest of the system
// only needs their raw text and the ordered list of license identifiers
// they reference. Validation against the canonical license list happens
// elsewhere.
package licenses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// ErrExpression indicates a malformed license expression.
var ErrExpression = errors.New("invalid license expression")

// Expression is one parsed SPDX license expression, e.g. "MIT OR Apache-2.0".
type Expression struct {
	raw  string
	keys []string
}

// Parse parses a license expression. The returned error wraps ErrExpression
// together with the parser's own message.
func Parse(text string) (Expression, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Expression{}, fmt.Errorf("%w: empty", ErrExpression)
	}

	keys, err := spdxexp.ExtractLicenses(trimmed)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: %q: %v", ErrExpression, trimmed, err)
	}

	return Expression{raw: trimmed, keys: keys}, nil
}

// String returns the raw expression text.
func (e Expression) String() string {
	return e.raw
}

// Keys returns the ordered license identifiers the expression references.
func (e Expression) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// IsZero reports whether the expression is the zero value.
func (e Expression) IsZero() bool {
	return e.raw == ""
}
