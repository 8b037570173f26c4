// Package copyright parses free-text copyright lines into structured
// notices and provides merging and year-range compaction over sets of them.
package copyright

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// YearRange is one year entry of a copyright notice: a bare year, a closed
// range ("2017-2019"), an open range ("2017-") or a word-terminated range
// ("2017--Present"). Word-valued ends require the double-dash separator;
// a single dash before a word is rejected as ambiguous.
type YearRange struct {
	// Start is exactly four digits.
	Start string
	// Separator is "", "-" or "--".
	Separator string
	// End is "", four digits, or a bare word (double-dash separator only).
	End string
}

var (
	singleYearRE = regexp.MustCompile(`^\d{4}$`)
	yearRangeRE  = regexp.MustCompile(`^(\d{4})\s*(--|-)\s*(.*)$`)
	endWordRE    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// ParseYearRange parses one year range.
//
// Accepted forms: "2017", "2017-2019", "2017--2019", "2017-" (open end) and
// "2017--Present". ParseYearRange and String are inverses up to whitespace
// normalization.
func ParseYearRange(text string) (YearRange, error) {
	trimmed := strings.TrimSpace(text)

	if singleYearRE.MatchString(trimmed) {
		return YearRange{Start: trimmed}, nil
	}

	m := yearRangeRE.FindStringSubmatch(trimmed)
	if m == nil {
		return YearRange{}, fmt.Errorf("%w: %q", ErrYearRange, text)
	}

	r := YearRange{Start: m[1], Separator: m[2], End: strings.TrimSpace(m[3])}
	switch {
	case r.End == "":
		return r, nil
	case singleYearRE.MatchString(r.End):
		return r, nil
	case endWordRE.MatchString(r.End):
		if r.Separator != "--" {
			return YearRange{}, fmt.Errorf("%w: word end needs double dash in %q", ErrYearRange, text)
		}

		return r, nil
	default:
		return YearRange{}, fmt.Errorf("%w: %q", ErrYearRange, text)
	}
}

// ParseYearTuple splits free text of comma/space separated year tokens into
// an ordered list of ranges.
//
// A separator spaced on both sides joins its neighbours into one range
// ("2017 - 2019"); an asymmetrically spaced separator ("2017- 2019") yields
// independent single years.
func ParseYearTuple(text string) ([]YearRange, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	out := make([]YearRange, 0, len(fields))

	for i := 0; i < len(fields); i++ {
		f := fields[i]

		if f == "-" || f == "--" {
			if len(out) == 0 || i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: lone separator in %q", ErrYearRange, text)
			}

			prev := out[len(out)-1]
			if prev.Separator != "" {
				return nil, fmt.Errorf("%w: %q", ErrYearRange, text)
			}

			joined, err := ParseYearRange(prev.Start + f + fields[i+1])
			if err != nil {
				return nil, err
			}

			out[len(out)-1] = joined
			i++
			continue
		}

		// A dangling separator followed by further tokens marks an
		// independent single year, not an open range.
		if i+1 < len(fields) {
			if s, ok := strings.CutSuffix(f, "--"); ok {
				f = s
			} else if s, ok := strings.CutSuffix(f, "-"); ok {
				f = s
			}
		}

		// Mirrored form: a separator glued to the token after a spaced
		// gap ("2017 -2019") also yields independent years.
		if i > 0 {
			if s, ok := strings.CutPrefix(f, "--"); ok {
				f = s
			} else if s, ok := strings.CutPrefix(f, "-"); ok {
				f = s
			}
		}

		r, err := ParseYearRange(f)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}

// String renders the range in canonical form without surrounding spaces.
func (r YearRange) String() string {
	return r.Start + r.Separator + r.End
}

// IsWordEnd reports whether the range ends in a word such as "Present".
func (r YearRange) IsWordEnd() bool {
	return r.End != "" && !singleYearRE.MatchString(r.End)
}

// IsOpen reports whether the range has a separator but no end.
func (r YearRange) IsOpen() bool {
	return r.Separator != "" && r.End == ""
}

// startInt returns the numeric start year.
func (r YearRange) startInt() int {
	n, _ := strconv.Atoi(r.Start)
	return n
}

// endInt returns the numeric end of the covered interval. Word ends extend
// to the far future; bare years and open ranges end at their start.
func (r YearRange) endInt() int {
	if r.IsWordEnd() {
		return int(^uint(0) >> 1)
	}

	if r.End == "" {
		return r.startInt()
	}

	n, _ := strconv.Atoi(r.End)
	return n
}

// less orders ranges numerically by start, then end (words sort last, ties
// between words break lexicographically).
func (r YearRange) less(other YearRange) bool {
	if r.startInt() != other.startInt() {
		return r.startInt() < other.startInt()
	}

	if r.endInt() != other.endInt() {
		return r.endInt() < other.endInt()
	}

	if r.IsWordEnd() && other.IsWordEnd() {
		return r.End < other.End
	}

	return r.String() < other.String()
}

// Compact reduces ranges to the minimal equivalent list.
//
// Touching, overlapping and nested numeric intervals are unioned (so runs
// of consecutive single years collapse into one range), ranges sharing a
// word end keep only the lowest start, ranges with different word ends are
// never merged, and a range whose end equals its start collapses to a bare
// year. Compact is idempotent.
func Compact(ranges []YearRange) []YearRange {
	type interval struct{ start, end int }

	var numeric []interval
	wordStarts := make(map[string]int)
	var open []YearRange

	for _, r := range ranges {
		switch {
		case r.IsWordEnd():
			if lowest, ok := wordStarts[r.End]; !ok || r.startInt() < lowest {
				wordStarts[r.End] = r.startInt()
			}
		case r.IsOpen():
			seen := false
			for _, o := range open {
				if o.Start == r.Start {
					seen = true
					break
				}
			}
			if !seen {
				open = append(open, r)
			}
		default:
			numeric = append(numeric, interval{start: r.startInt(), end: r.endInt()})
		}
	}

	sort.Slice(numeric, func(i, j int) bool {
		if numeric[i].start != numeric[j].start {
			return numeric[i].start < numeric[j].start
		}
		return numeric[i].end < numeric[j].end
	})

	out := make([]YearRange, 0, len(ranges))
	for i := 0; i < len(numeric); {
		merged := numeric[i]
		j := i + 1
		for j < len(numeric) && numeric[j].start <= merged.end+1 {
			if numeric[j].end > merged.end {
				merged.end = numeric[j].end
			}
			j++
		}

		if merged.start == merged.end {
			out = append(out, YearRange{Start: strconv.Itoa(merged.start)})
		} else {
			out = append(out, YearRange{
				Start:     strconv.Itoa(merged.start),
				Separator: "-",
				End:       strconv.Itoa(merged.end),
			})
		}

		i = j
	}

	for word, start := range wordStarts {
		out = append(out, YearRange{Start: strconv.Itoa(start), Separator: "--", End: word})
	}

	out = append(out, open...)

	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}
