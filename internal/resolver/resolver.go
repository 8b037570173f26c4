// Package resolver turns parsed configuration sources into per-path
// reuse information. The nested resolver folds a chain of directory
// sources under the three precedence policies; the flat resolver wraps
// the single legacy file.
package resolver

import (
	"github.com/relictool/relic/internal/reuse"
	"github.com/relictool/relic/internal/utils"
)

// Grouped holds the winning contributions for one path bucketed by the
// precedence of the rule that produced them. Within a bucket the order is
// shallowest source first.
type Grouped map[reuse.Precedence][]reuse.Info

// Resolver answers reuse-information queries for root-relative paths.
type Resolver interface {
	// Resolve returns the flattened union of every winning contribution
	// for the path. The result's Path is the queried path.
	Resolve(relPath string) reuse.Info

	// ResolveGrouped returns the winning contributions with their
	// precedence provenance preserved; nil when nothing matched.
	ResolveGrouped(relPath string) Grouped

	// ResolveWith folds the file's own header info into the result as
	// the deepest possible contribution.
	ResolveWith(relPath string, header reuse.Info) reuse.Info
}

// Option configures a resolver.
type Option func(*options)

type options struct {
	logger utils.Logger
}

// WithLogger enables debug logging during resolution.
func WithLogger(l utils.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
