// Package app wires the scanner, the configuration sources, and the
// resolver into the operations the commands expose.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/relictool/relic/internal/annotations"
	"github.com/relictool/relic/internal/config"
	"github.com/relictool/relic/internal/fileheader"
	"github.com/relictool/relic/internal/ignore"
	"github.com/relictool/relic/internal/logger"
	"github.com/relictool/relic/internal/report"
	"github.com/relictool/relic/internal/resolver"
	"github.com/relictool/relic/internal/reuse"
	"github.com/relictool/relic/internal/walker"
)

// ErrMixedFormats is returned when a project declares both nested
// configuration files and the legacy flat file.
var ErrMixedFormats = errors.New("project declares both REUSE.toml and " + annotations.FlatFileName)

// licensesDir holds the project's license texts; its files carry no
// obligations of their own.
const licensesDir = "LICENSES"

// App encapsulates the main application functionality.
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
}

// Result is the outcome of a full project scan.
type Result struct {
	Records []report.Record
	Skipped []walker.SkippedItem
	Summary report.Summary
}

// New creates an App instance. The logger writes to stderr; results go
// to Output, which defaults to stdout.
func New(cfg *config.Config) *App {
	color.NoColor = !cfg.UseColors

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: os.Stdout,
	}
}

// Logger exposes the application logger to the commands.
func (a *App) Logger() *logger.Logger {
	return a.log
}

// Scan walks the whole project, resolves every in-scope file, and
// returns per-file records plus a summary.
func (a *App) Scan(ctx context.Context) (*Result, error) {
	rootDir, err := a.validateRoot()
	if err != nil {
		return nil, err
	}

	matcher, err := a.newMatcher(rootDir)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		sources []*annotations.Source
		headers = make(map[string]headerResult)
		cfgErrs []error
	)

	walkFn := func(relativePath string, content []byte, err error) error {
		if err != nil {
			a.log.Warn("skipping %s: %v", relativePath, err)
			return nil
		}

		if path.Base(relativePath) == annotations.ConfigFileName {
			src, parseErr := annotations.ParseSource(relativePath, content)
			mu.Lock()
			if parseErr != nil {
				cfgErrs = append(cfgErrs, parseErr)
			} else {
				sources = append(sources, src)
			}
			mu.Unlock()
			return nil
		}

		if underLicensesDir(relativePath) {
			return nil
		}

		info, extractErr := fileheader.Extract(relativePath, content)
		mu.Lock()
		headers[relativePath] = headerResult{info: info, err: extractErr}
		mu.Unlock()
		return nil
	}

	walkOpts := []walker.Option{
		walker.WithLogger(a.log),
		walker.WithConcurrency(a.cfg.Concurrent),
		walker.WithMaxWorkers(a.cfg.MaxWorkers),
		walker.WithContext(ctx),
	}

	a.log.Info("scanning %s", rootDir)
	skipped, err := walker.Walk(rootDir, matcher, walkFn, walkOpts...)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", rootDir, err)
	}

	if len(cfgErrs) > 0 {
		return nil, errors.Join(cfgErrs...)
	}

	res, err := a.buildResolver(rootDir, sources)
	if err != nil {
		return nil, err
	}

	records := make([]report.Record, 0, len(headers))
	for relativePath, h := range headers {
		info := res.ResolveWith(relativePath, h.info)

		var extractErrs []string
		if h.err != nil {
			extractErrs = append(extractErrs, h.err.Error())
		}

		records = append(records, report.FromInfo(info, extractErrs))
	}
	report.Sort(records)

	return &Result{
		Records: records,
		Skipped: skipped,
		Summary: report.Summarize(records),
	}, nil
}

// ResolvePaths resolves reuse information for specific project paths
// without scanning the whole tree. Paths are taken relative to the root;
// missing files still resolve against the configuration sources.
func (a *App) ResolvePaths(ctx context.Context, relPaths []string) ([]report.Record, error) {
	rootDir, err := a.validateRoot()
	if err != nil {
		return nil, err
	}

	matcher, err := a.newMatcher(rootDir)
	if err != nil {
		return nil, err
	}

	sources, err := a.collectSources(ctx, rootDir, matcher)
	if err != nil {
		return nil, err
	}

	res, err := a.buildResolver(rootDir, sources)
	if err != nil {
		return nil, err
	}

	records := make([]report.Record, 0, len(relPaths))
	for _, relPath := range relPaths {
		relPath = filepath.ToSlash(filepath.Clean(relPath))

		var header reuse.Info
		var extractErrs []string

		content, readErr := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(relPath)))
		if readErr == nil {
			var extractErr error
			header, extractErr = fileheader.Extract(relPath, content)
			if extractErr != nil {
				extractErrs = append(extractErrs, extractErr.Error())
			}
		} else {
			a.log.Debug("resolve: %s unreadable, using sources only: %v", relPath, readErr)
		}

		info := res.ResolveWith(relPath, header)
		records = append(records, report.FromInfo(info, extractErrs))
	}

	return records, nil
}

type headerResult struct {
	info reuse.Info
	err  error
}

// validateRoot resolves and checks the configured project root.
func (a *App) validateRoot() (string, error) {
	rootDir, err := filepath.Abs(a.cfg.RootDir)
	if err != nil {
		return "", fmt.Errorf("invalid root directory %q: %w", a.cfg.RootDir, err)
	}

	info, err := os.Stat(rootDir)
	if err != nil {
		return "", fmt.Errorf("root directory %q: %w", rootDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", rootDir)
	}

	return rootDir, nil
}

func (a *App) newMatcher(rootDir string) (*ignore.Matcher, error) {
	opts := []ignore.Option{
		ignore.WithLogger(a.log),
		ignore.WithHidden(a.cfg.IncludeHidden),
	}
	if len(a.cfg.CustomIgnore) > 0 {
		opts = append(opts, ignore.WithCustomRules(a.cfg.CustomIgnore))
	}

	matcher, err := ignore.New(rootDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing scope rules: %w", err)
	}

	return matcher, nil
}

// buildResolver picks the resolution strategy from what the project
// declares. A flat file and nested files together are rejected.
func (a *App) buildResolver(rootDir string, sources []*annotations.Source) (resolver.Resolver, error) {
	flat, err := a.loadFlatSource(rootDir)
	if err != nil {
		return nil, err
	}

	if flat != nil {
		if len(sources) > 0 {
			return nil, ErrMixedFormats
		}
		a.log.Debug("using flat source %s", flat.Path)
		return resolver.NewFlat(flat, resolver.WithLogger(a.log)), nil
	}

	a.log.Debug("using %d nested configuration files", len(sources))
	return resolver.NewNested(sources, resolver.WithLogger(a.log)), nil
}

// loadFlatSource reads the legacy flat file if the project has one. It
// lives in a hidden directory, so the walker never delivers it.
func (a *App) loadFlatSource(rootDir string) (*annotations.FlatSource, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(annotations.FlatFileName)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", annotations.FlatFileName, err)
	}

	return annotations.ParseFlatSource(annotations.FlatFileName, data)
}

// collectSources finds and parses every nested configuration file
// without reading the rest of the tree.
func (a *App) collectSources(ctx context.Context, rootDir string, matcher *ignore.Matcher) ([]*annotations.Source, error) {
	var sources []*annotations.Source
	var cfgErrs []error

	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			a.log.Warn("collecting sources: %q: %v", p, err)
			return nil
		}

		relativePath, relErr := filepath.Rel(rootDir, p)
		if relErr != nil || relativePath == "." {
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if matcher.ShouldIgnore(relativePath, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || path.Base(relativePath) != annotations.ConfigFileName {
			return nil
		}

		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", relativePath, readErr)
		}

		src, parseErr := annotations.ParseSource(relativePath, data)
		if parseErr != nil {
			cfgErrs = append(cfgErrs, parseErr)
			return nil
		}

		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(cfgErrs) > 0 {
		return nil, errors.Join(cfgErrs...)
	}

	return sources, nil
}

// underLicensesDir reports whether a path is inside the license-text
// directory.
func underLicensesDir(relativePath string) bool {
	return relativePath == licensesDir || strings.HasPrefix(relativePath, licensesDir+"/")
}
