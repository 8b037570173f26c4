package resolver

import (
	"github.com/relictool/relic/internal/annotations"
	"github.com/relictool/relic/internal/reuse"
	"github.com/relictool/relic/internal/utils"
)

// Flat resolves paths against the single legacy flat source. Every
// contribution behaves as aggregate: there is no hierarchy to fold.
type Flat struct {
	source *annotations.FlatSource
	logger utils.Logger
}

// NewFlat builds a resolver over one parsed flat source.
func NewFlat(source *annotations.FlatSource, opts ...Option) *Flat {
	o := newOptions(opts)
	return &Flat{source: source, logger: o.logger}
}

// Resolve returns the last matching paragraph's contribution.
func (f *Flat) Resolve(relPath string) reuse.Info {
	info, ok := f.lookup(relPath)
	if !ok {
		return reuse.Info{Path: relPath, SourceType: reuse.SourceFlatParagraph}
	}

	return info
}

// ResolveWith unions the flat contribution with the file's own header
// info. Flat paragraphs have no precedence of their own, so both always
// apply.
func (f *Flat) ResolveWith(relPath string, header reuse.Info) reuse.Info {
	infos := []reuse.Info{}
	if info, ok := f.lookup(relPath); ok {
		infos = append(infos, info)
	}
	infos = append(infos, header)

	out := reuse.Union(infos...)
	out.Path = relPath
	return out
}

// ResolveGrouped reports the flat contribution under the aggregate
// bucket: flat paragraphs have no hierarchy to fold.
func (f *Flat) ResolveGrouped(relPath string) Grouped {
	info, ok := f.lookup(relPath)
	if !ok {
		return nil
	}

	return Grouped{reuse.PrecedenceAggregate: {info}}
}

func (f *Flat) lookup(relPath string) (reuse.Info, bool) {
	p, ok := f.source.Lookup(relPath)
	if !ok {
		return reuse.Info{}, false
	}

	f.logger.Debug("%s: matched flat paragraph %q", relPath, p.FilesGlob)
	return f.source.Info(p, relPath), true
}
