package copyright

import (
	"fmt"
	"regexp"
	"strings"
)

// Prefix identifies one of the canonical copyright prefix forms. The
// declaration order is the tie-break order used when merging notices.
type Prefix int

const (
	// PrefixSPDX is "SPDX-FileCopyrightText:".
	PrefixSPDX Prefix = iota
	// PrefixSPDXC is "SPDX-FileCopyrightText: (C)".
	PrefixSPDXC
	// PrefixSPDXSymbol is "SPDX-FileCopyrightText: ©".
	PrefixSPDXSymbol
	// PrefixSPDXString is "SPDX-FileCopyrightText: Copyright".
	PrefixSPDXString
	// PrefixSPDXStringC is "SPDX-FileCopyrightText: Copyright (C)".
	PrefixSPDXStringC
	// PrefixSPDXStringSymbol is "SPDX-FileCopyrightText: Copyright ©".
	PrefixSPDXStringSymbol
	// PrefixSnippet is "SPDX-SnippetCopyrightText:".
	PrefixSnippet
	// PrefixString is a plain "Copyright".
	PrefixString
	// PrefixStringC is "Copyright (C)".
	PrefixStringC
	// PrefixStringSymbol is "Copyright ©".
	PrefixStringSymbol
	// PrefixSymbol is a bare "©".
	PrefixSymbol
)

// String returns the canonical prefix text.
func (p Prefix) String() string {
	switch p {
	case PrefixSPDX:
		return "SPDX-FileCopyrightText:"
	case PrefixSPDXC:
		return "SPDX-FileCopyrightText: (C)"
	case PrefixSPDXSymbol:
		return "SPDX-FileCopyrightText: ©"
	case PrefixSPDXString:
		return "SPDX-FileCopyrightText: Copyright"
	case PrefixSPDXStringC:
		return "SPDX-FileCopyrightText: Copyright (C)"
	case PrefixSPDXStringSymbol:
		return "SPDX-FileCopyrightText: Copyright ©"
	case PrefixSnippet:
		return "SPDX-SnippetCopyrightText:"
	case PrefixString:
		return "Copyright"
	case PrefixStringC:
		return "Copyright (C)"
	case PrefixStringSymbol:
		return "Copyright ©"
	case PrefixSymbol:
		return "©"
	default:
		return "Copyright"
	}
}

// prefixPattern is one recognizable prefix form. Patterns tolerate
// irregular whitespace around "(C)" and "©" while still normalizing to the
// canonical enum member. Order matters: longer forms come first so that
// "Copyright (C)" is not consumed as a bare "Copyright".
type prefixPattern struct {
	prefix Prefix
	re     *regexp.Regexp
}

var prefixPatterns = []prefixPattern{
	{PrefixSPDXStringC, regexp.MustCompile(`^SPDX-FileCopyrightText:\s*Copyright\s*\([cC]\)`)},
	{PrefixSPDXStringSymbol, regexp.MustCompile(`^SPDX-FileCopyrightText:\s*Copyright\s*©`)},
	{PrefixSPDXString, regexp.MustCompile(`^SPDX-FileCopyrightText:\s*Copyright\b`)},
	{PrefixSPDXC, regexp.MustCompile(`^SPDX-FileCopyrightText:\s*\([cC]\)`)},
	{PrefixSPDXSymbol, regexp.MustCompile(`^SPDX-FileCopyrightText:\s*©`)},
	{PrefixSPDX, regexp.MustCompile(`^SPDX-FileCopyrightText:`)},
	{PrefixSnippet, regexp.MustCompile(`^SPDX-SnippetCopyrightText:`)},
	{PrefixStringC, regexp.MustCompile(`^Copyright\s*\([cC]\)`)},
	{PrefixStringSymbol, regexp.MustCompile(`^Copyright\s*©`)},
	{PrefixString, regexp.MustCompile(`^Copyright\b`)},
	{PrefixSymbol, regexp.MustCompile(`^©`)},
}

// yearTokenRE matches one year-ish whitespace-separated token, optionally
// carrying a trailing comma: "2017", "2017-2019,", "2017--Present".
var yearTokenRE = regexp.MustCompile(`^\d{4}(?:(?:--|-)(?:\d{4}|[A-Za-z][A-Za-z0-9]*)?)?,?$`)

// Notice is one structured copyright notice.
type Notice struct {
	// Name is the holder name with collapsed whitespace.
	Name string
	// Prefix is the canonical prefix form the text matched.
	Prefix Prefix
	// Years is the ordered year list, possibly empty.
	Years []YearRange
	// Original is the raw input text, empty for synthesized notices.
	Original string
}

// ParseNotice parses one free-text copyright line.
//
// The line must start with one of the canonical prefixes; an optional year
// list may precede and/or follow the holder name.
func ParseNotice(text string) (Notice, error) {
	trimmed := strings.TrimSpace(text)

	var matched *prefixPattern
	var rest string
	for i := range prefixPatterns {
		if loc := prefixPatterns[i].re.FindStringIndex(trimmed); loc != nil {
			matched = &prefixPatterns[i]
			rest = strings.TrimSpace(trimmed[loc[1]:])
			break
		}
	}

	if matched == nil {
		return Notice{}, fmt.Errorf("%w: %q", ErrNoPrefix, text)
	}

	fields := strings.Fields(rest)

	// Leading year list, including spaced separators between year tokens.
	lead := 0
	for lead < len(fields) {
		f := fields[lead]
		if yearTokenRE.MatchString(f) {
			lead++
			continue
		}

		if (f == "-" || f == "--") && lead > 0 && lead+1 < len(fields) && yearTokenRE.MatchString(fields[lead+1]) {
			lead += 2
			continue
		}

		break
	}

	// Trailing year list.
	trail := len(fields)
	for trail > lead && yearTokenRE.MatchString(fields[trail-1]) {
		trail--
	}

	name := strings.Join(fields[lead:trail], " ")
	name = strings.TrimRight(name, ",")

	yearText := strings.Join(fields[:lead], " ")
	if trail < len(fields) {
		yearText += " " + strings.Join(fields[trail:], " ")
	}

	var years []YearRange
	if strings.TrimSpace(yearText) != "" {
		parsed, err := ParseYearTuple(yearText)
		if err != nil {
			return Notice{}, err
		}
		years = parsed
	}

	return Notice{
		Name:     name,
		Prefix:   matched.prefix,
		Years:    years,
		Original: trimmed,
	}, nil
}

// String renders the notice canonically: prefix, years, then holder name.
func (n Notice) String() string {
	parts := []string{n.Prefix.String()}

	if len(n.Years) > 0 {
		rendered := make([]string, len(n.Years))
		for i, r := range n.Years {
			rendered[i] = r.String()
		}
		parts = append(parts, strings.Join(rendered, ", "))
	}

	if n.Name != "" {
		parts = append(parts, n.Name)
	}

	return strings.Join(parts, " ")
}

// Less orders notices: with-years before without, then by year list, then
// name, then prefix.
func (n Notice) Less(other Notice) bool {
	if (len(n.Years) > 0) != (len(other.Years) > 0) {
		return len(n.Years) > 0
	}

	for i := 0; i < len(n.Years) && i < len(other.Years); i++ {
		if n.Years[i] != other.Years[i] {
			return n.Years[i].less(other.Years[i])
		}
	}

	if len(n.Years) != len(other.Years) {
		return len(n.Years) < len(other.Years)
	}

	if n.Name != other.Name {
		return n.Name < other.Name
	}

	return n.Prefix < other.Prefix
}
