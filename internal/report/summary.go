package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/relictool/relic/internal/walker"
)

// Summary aggregates the outcome of one project scan.
type Summary struct {
	Total      int `json:"total"`
	Complete   int `json:"complete"`
	Incomplete int `json:"incomplete"`
	Errors     int `json:"errors"`
}

// Summarize counts records by completeness.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, rec := range records {
		if rec.Complete() {
			s.Complete++
		} else {
			s.Incomplete++
		}
		if len(rec.Errors) > 0 {
			s.Errors++
		}
	}
	return s
}

// Display writes a short human-readable summary.
func (s Summary) Display(w io.Writer) {
	fmt.Fprintf(w, "\n%d files scanned: %d with full reuse information, %d without",
		s.Total, s.Complete, s.Incomplete)
	if s.Errors > 0 {
		fmt.Fprintf(w, ", %d with errors", s.Errors)
	}
	fmt.Fprintln(w)
}

// DisplaySkipped lists the paths the scan left out and why.
func DisplaySkipped(w io.Writer, skipped []walker.SkippedItem) {
	if len(skipped) == 0 {
		return
	}

	sort.Slice(skipped, func(i, j int) bool {
		return skipped[i].Path < skipped[j].Path
	})

	fmt.Fprintf(w, "\nskipped %d items:\n", len(skipped))
	for _, item := range skipped {
		kind := "file"
		if item.IsDir {
			kind = "dir"
		}
		fmt.Fprintf(w, "  %-4s %s (%s)\n", kind, item.Path, item.Reason)
	}
}
