// Package ignore decides which paths fall outside a project's scope.
//
// A path is out of scope when the project's own ignore rules exclude it:
// .gitignore files anywhere in the tree, the VCS metadata directory
// itself, hidden files unless requested, and any extra patterns given on
// the command line. Out-of-scope files carry no reuse obligations and are
// never scanned.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/relictool/relic/internal/utils"
)

// Matcher determines whether a file or directory is out of scope.
type Matcher struct {
	repoIgnore   gitignore.GitIgnore
	customIgnore gitignore.GitIgnore

	rootDir        string
	includeHidden  bool
	customPatterns []string
	logger         utils.Logger
	disabled       bool
}

// New creates a Matcher rooted at rootDir. The repository's .gitignore
// files are loaded recursively, matching git's own behavior.
func New(rootDir string, opts ...Option) (*Matcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: absolute path for %q: %w", rootDir, err)
	}

	m := &Matcher{
		rootDir: absRootDir,
		logger:  utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.disabled {
		return m, nil
	}

	// The library reports rule-file problems through this handler;
	// returning true keeps matching going past the bad rule.
	onError := func(e gitignore.Error) bool {
		m.logger.Warn("ignore: %v", e)
		return true
	}

	repo := gitignore.NewRepositoryWithErrors(m.rootDir, "", onError)
	if repo == nil {
		return nil, fmt.Errorf("ignore: %q is not a usable repository root", m.rootDir)
	}
	m.repoIgnore = repo

	if len(m.customPatterns) > 0 {
		rules := strings.Join(m.customPatterns, "\n")
		m.customIgnore = gitignore.New(strings.NewReader(rules), m.rootDir, onError)
	}

	return m, nil
}

// Disabled returns a matcher that excludes nothing.
func Disabled() *Matcher {
	m, _ := New(".", WithDisabled(true))
	return m
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithHidden includes or excludes dotfiles and dot-directories.
func WithHidden(include bool) Option {
	return func(m *Matcher) {
		m.includeHidden = include
	}
}

// WithCustomRules adds extra exclusion patterns in gitignore syntax.
func WithCustomRules(patterns []string) Option {
	return func(m *Matcher) {
		m.customPatterns = patterns
	}
}

// WithLogger sets the matcher's logger.
func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDisabled turns the matcher into a no-op.
func WithDisabled(disabled bool) Option {
	return func(m *Matcher) {
		m.disabled = disabled
	}
}
