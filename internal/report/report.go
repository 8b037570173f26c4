// Package report formats resolution results for humans and machines.
package report

import (
	"sort"

	"github.com/relictool/relic/internal/reuse"
)

// Record is the per-file view of a resolution result.
type Record struct {
	Path         string   `json:"path"`
	Licenses     []string `json:"licenses,omitempty"`
	Copyrights   []string `json:"copyrights,omitempty"`
	Contributors []string `json:"contributors,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

// Complete reports whether the record carries both licensing and
// copyright information.
func (r Record) Complete() bool {
	return len(r.Licenses) > 0 && len(r.Copyrights) > 0
}

// FromInfo converts a resolved Info into a Record. extractErrs carries
// any parse problems hit while reading the file's own header.
func FromInfo(info reuse.Info, extractErrs []string) Record {
	rec := Record{
		Path:         info.Path,
		Contributors: info.Contributors,
		Errors:       extractErrs,
	}

	for _, e := range info.Expressions {
		rec.Licenses = append(rec.Licenses, e.String())
	}
	for _, n := range info.Copyrights {
		rec.Copyrights = append(rec.Copyrights, n.String())
	}

	return rec
}

// Sort orders records by path for stable output.
func Sort(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
}
