// Package reuse defines the common result record for license and
// copyright resolution, plus the precedence policy vocabulary shared by
// the configuration sources and the resolver.
package reuse

import (
	"errors"
	"fmt"
	"sort"

	"github.com/relictool/relic/internal/copyright"
	"github.com/relictool/relic/internal/licenses"
)

// SourceType records where a piece of reuse information came from.
type SourceType int

const (
	// SourceUnknown is the zero value.
	SourceUnknown SourceType = iota
	// SourceFileHeader means info extracted from the file's own contents.
	SourceFileHeader
	// SourceFlatParagraph means info from the legacy flat copyright file.
	SourceFlatParagraph
	// SourceNestedConfig means info from a nested configuration file.
	SourceNestedConfig
)

// String returns a short label for logging and reports.
func (s SourceType) String() string {
	switch s {
	case SourceFileHeader:
		return "file header"
	case SourceFlatParagraph:
		return "flat paragraph"
	case SourceNestedConfig:
		return "nested config"
	default:
		return "unknown"
	}
}

// Precedence is the merge policy of one directory-scoped rule.
type Precedence string

const (
	// PrecedenceAggregate keeps every matching source's contribution.
	PrecedenceAggregate Precedence = "aggregate"
	// PrecedenceClosest keeps the deepest contribution per field.
	PrecedenceClosest Precedence = "closest"
	// PrecedenceOverride stops resolution at the first matching rule.
	PrecedenceOverride Precedence = "override"
)

// ErrPrecedence indicates an unrecognized precedence literal.
var ErrPrecedence = errors.New("unrecognized precedence")

// ParsePrecedence parses a precedence literal; empty defaults to closest.
func ParsePrecedence(text string) (Precedence, error) {
	switch Precedence(text) {
	case "":
		return PrecedenceClosest, nil
	case PrecedenceAggregate, PrecedenceClosest, PrecedenceOverride:
		return Precedence(text), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrPrecedence, text)
	}
}

// Info is one resolved set of reuse information for a path.
//
// The three collection fields behave as sets: construction and union keep
// them sorted and free of duplicates. Info values are immutable by
// convention; combination always produces a new value.
type Info struct {
	// Expressions are the SPDX license expressions applying to the path.
	Expressions []licenses.Expression
	// Copyrights are the structured copyright notices.
	Copyrights []copyright.Notice
	// Contributors are raw contributor lines.
	Contributors []string

	// Path is the path the info applies to, relative to the project root.
	Path string
	// SourcePath is the file the info was declared in, relative to the
	// project root; equal to Path for file headers.
	SourcePath string
	// SourceType says which kind of source produced the info.
	SourceType SourceType
}

// New builds a normalized Info from raw collections.
func New(exprs []licenses.Expression, notices []copyright.Notice, contributors []string) Info {
	info := Info{}
	info.Expressions = dedupeExpressions(exprs)
	info.Copyrights = dedupeNotices(notices)
	info.Contributors = dedupeStrings(contributors)
	return info
}

// Union combines infos: collection fields are set-unioned, scalar metadata
// is taken from the first operand that defines it.
func Union(infos ...Info) Info {
	var exprs []licenses.Expression
	var notices []copyright.Notice
	var contributors []string

	out := Info{}
	for _, info := range infos {
		exprs = append(exprs, info.Expressions...)
		notices = append(notices, info.Copyrights...)
		contributors = append(contributors, info.Contributors...)

		if out.Path == "" {
			out.Path = info.Path
		}
		if out.SourcePath == "" {
			out.SourcePath = info.SourcePath
		}
		if out.SourceType == SourceUnknown {
			out.SourceType = info.SourceType
		}
	}

	out.Expressions = dedupeExpressions(exprs)
	out.Copyrights = dedupeNotices(notices)
	out.Contributors = dedupeStrings(contributors)
	return out
}

// ContainsCopyrightOrLicensing reports whether the info carries either a
// license expression or a copyright notice.
func (i Info) ContainsCopyrightOrLicensing() bool {
	return len(i.Expressions) > 0 || len(i.Copyrights) > 0
}

// ContainsInfo reports whether any collection field is non-empty.
func (i Info) ContainsInfo() bool {
	return len(i.Expressions) > 0 || len(i.Copyrights) > 0 || len(i.Contributors) > 0
}

// Copy returns a deep copy.
func (i Info) Copy() Info {
	out := i
	out.Expressions = append([]licenses.Expression(nil), i.Expressions...)
	out.Copyrights = append([]copyright.Notice(nil), i.Copyrights...)
	out.Contributors = append([]string(nil), i.Contributors...)
	return out
}

// WithPath returns a copy with Path replaced.
func (i Info) WithPath(path string) Info {
	out := i.Copy()
	out.Path = path
	return out
}

// WithSourcePath returns a copy with SourcePath replaced.
func (i Info) WithSourcePath(sourcePath string) Info {
	out := i.Copy()
	out.SourcePath = sourcePath
	return out
}

// WithSourceType returns a copy with SourceType replaced.
func (i Info) WithSourceType(st SourceType) Info {
	out := i.Copy()
	out.SourceType = st
	return out
}

// WithoutExpressions returns a copy with an empty license set.
func (i Info) WithoutExpressions() Info {
	out := i.Copy()
	out.Expressions = nil
	return out
}

// WithoutCopyrights returns a copy with an empty copyright set.
func (i Info) WithoutCopyrights() Info {
	out := i.Copy()
	out.Copyrights = nil
	return out
}

func dedupeExpressions(exprs []licenses.Expression) []licenses.Expression {
	if len(exprs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(exprs))
	out := make([]licenses.Expression, 0, len(exprs))
	for _, e := range exprs {
		if _, ok := seen[e.String()]; ok {
			continue
		}
		seen[e.String()] = struct{}{}
		out = append(out, e)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].String() < out[b].String() })
	return out
}

func dedupeNotices(notices []copyright.Notice) []copyright.Notice {
	if len(notices) == 0 {
		return nil
	}

	// Identity ignores the raw original text.
	seen := make(map[string]struct{}, len(notices))
	out := make([]copyright.Notice, 0, len(notices))
	for _, n := range notices {
		if _, ok := seen[n.String()]; ok {
			continue
		}
		seen[n.String()] = struct{}{}
		out = append(out, n)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Less(out[b]) })
	return out
}

func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)
	return out
}
