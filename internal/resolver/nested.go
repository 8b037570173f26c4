package resolver

import (
	"sort"
	"strings"

	"github.com/relictool/relic/internal/annotations"
	"github.com/relictool/relic/internal/reuse"
	"github.com/relictool/relic/internal/utils"
)

// Nested resolves paths against a hierarchy of nested configuration
// sources. Sources are consulted from the project root downward; within
// each source the last declared matching rule contributes, and the rule's
// precedence decides how contributions across sources combine.
type Nested struct {
	// sources are sorted shallowest directory first.
	sources []*annotations.Source
	logger  utils.Logger
}

// match is one source's contribution to a path.
type match struct {
	info       reuse.Info
	precedence reuse.Precedence
	sourcePath string
	depth      int
}

// NewNested builds a resolver over the given sources. The input order
// does not matter; sources are sorted by directory depth.
func NewNested(sources []*annotations.Source, opts ...Option) *Nested {
	o := newOptions(opts)

	sorted := append([]*annotations.Source(nil), sources...)
	sort.SliceStable(sorted, func(a, b int) bool {
		if da, db := sorted[a].Depth(), sorted[b].Depth(); da != db {
			return da < db
		}
		return sorted[a].Directory < sorted[b].Directory
	})

	return &Nested{sources: sorted, logger: o.logger}
}

// Resolve flattens every winning contribution into one record.
func (n *Nested) Resolve(relPath string) reuse.Info {
	matches := n.filterClosest(relPath, n.collect(relPath))
	if len(matches) == 0 {
		return reuse.Info{Path: relPath, SourceType: reuse.SourceNestedConfig}
	}

	infos := make([]reuse.Info, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, m.info)
	}

	out := reuse.Union(infos...)
	out.Path = relPath
	return out
}

// ResolveWith folds the file's own header info into the chain as the
// deepest closest-precedence contribution: an override rule discards it,
// aggregate rules stack with it, and against other closest rules it wins
// each field it carries.
func (n *Nested) ResolveWith(relPath string, header reuse.Info) reuse.Info {
	matches := n.collect(relPath)

	overridden := len(matches) > 0 &&
		matches[len(matches)-1].precedence == reuse.PrecedenceOverride

	if header.ContainsInfo() && !overridden {
		matches = append(matches, match{
			info:       header,
			precedence: reuse.PrecedenceClosest,
			sourcePath: header.SourcePath,
			depth:      len(n.sources) + 1,
		})
	}

	matches = n.filterClosest(relPath, matches)

	if len(matches) == 0 {
		return reuse.Info{Path: relPath}
	}

	infos := make([]reuse.Info, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, m.info)
	}

	out := reuse.Union(infos...)
	out.Path = relPath
	return out
}

// ResolveGrouped returns the winning contributions bucketed by the
// precedence of the rule that produced each one.
func (n *Nested) ResolveGrouped(relPath string) Grouped {
	matches := n.filterClosest(relPath, n.collect(relPath))
	if len(matches) == 0 {
		return nil
	}

	out := make(Grouped)
	for _, m := range matches {
		out[m.precedence] = append(out[m.precedence], m.info)
	}

	return out
}

// collect walks the chain of covering sources from shallowest to deepest
// and gathers each one's contribution. An override rule takes its place
// in the chain and stops the walk: deeper sources are never consulted.
func (n *Nested) collect(relPath string) []match {
	var out []match

	for _, src := range n.sources {
		scoped, ok := scopedPath(src.Directory, relPath)
		if !ok {
			continue
		}

		item, ok := src.FindMatchingItem(scoped)
		if !ok {
			continue
		}

		info := item.Info().
			WithPath(relPath).
			WithSourcePath(src.Path).
			WithSourceType(reuse.SourceNestedConfig)

		out = append(out, match{
			info:       info,
			precedence: item.Precedence,
			sourcePath: src.Path,
			depth:      src.Depth(),
		})

		if item.Precedence == reuse.PrecedenceOverride {
			n.logger.Debug("%s: override in %s ends resolution", relPath, src.Path)
			break
		}
	}

	return out
}

// filterClosest applies the closest policy across the collected matches.
// Among closest-precedence contributions the deepest one carrying
// copyright wins the copyright field and the deepest one carrying
// licensing wins the license field, independently. Losing contributions
// are stripped of the lost field and dropped once nothing remains.
// Aggregate and override contributions pass through untouched.
func (n *Nested) filterClosest(relPath string, matches []match) []match {
	copyrightWin, licenseWin := -1, -1
	contenders := 0

	for i, m := range matches {
		if m.precedence != reuse.PrecedenceClosest {
			continue
		}

		contenders++
		if len(m.info.Copyrights) > 0 {
			copyrightWin = i
		}
		if len(m.info.Expressions) > 0 {
			licenseWin = i
		}
	}

	if contenders <= 1 {
		return matches
	}

	if contenders > 2 {
		n.logger.Debug("%s: %d closest contributions, keeping the deepest per field", relPath, contenders)
	}

	out := make([]match, 0, len(matches))
	for i, m := range matches {
		if m.precedence != reuse.PrecedenceClosest {
			out = append(out, m)
			continue
		}

		switch {
		case i == copyrightWin && i == licenseWin:
		case i == copyrightWin:
			m.info = m.info.WithoutExpressions()
		case i == licenseWin:
			m.info = m.info.WithoutCopyrights()
		default:
			// Contributor lines are not contested between levels.
			if len(m.info.Contributors) == 0 {
				continue
			}
			m.info = m.info.WithoutExpressions().WithoutCopyrights()
		}

		out = append(out, m)
	}

	return out
}

// scopedPath rewrites a root-relative path into a source-relative one,
// or reports that the source's directory does not cover the path.
func scopedPath(dir, relPath string) (string, bool) {
	if dir == "" {
		return relPath, true
	}

	if rest, ok := strings.CutPrefix(relPath, dir+"/"); ok {
		return rest, true
	}

	return "", false
}
