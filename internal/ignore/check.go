package ignore

import (
	"path/filepath"
	"strings"
)

// ShouldIgnore reports whether a root-relative path is out of scope.
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m == nil || m.disabled {
		return false
	}

	// The root itself is always in scope.
	if relativePath == "" || relativePath == "." {
		return false
	}

	unixPath := filepath.ToSlash(relativePath)

	if !m.includeHidden && hasHiddenComponent(unixPath) {
		m.logger.Debug("ignore: %q excluded as hidden", relativePath)
		return true
	}

	if isInVCSDir(unixPath, isDir) {
		m.logger.Debug("ignore: %q excluded as VCS metadata", relativePath)
		return true
	}

	// Relative matching needs no filesystem access; the winning pattern
	// carries the negation state, so Ignore is false for a path a later
	// negation rule pulled back in.
	if m.customIgnore != nil {
		if match := m.customIgnore.Relative(unixPath, isDir); match != nil && match.Ignore() {
			m.logger.Debug("ignore: %q excluded by custom rule", relativePath)
			return true
		}
	}

	if m.repoIgnore != nil {
		if match := m.repoIgnore.Relative(unixPath, isDir); match != nil && match.Ignore() {
			m.logger.Debug("ignore: %q excluded by repository rule", relativePath)
			return true
		}
	}

	return false
}

// hasHiddenComponent reports whether any path component starts with a dot.
func hasHiddenComponent(unixPath string) bool {
	for _, part := range strings.Split(unixPath, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// isInVCSDir reports whether the path is the .git directory or inside it.
func isInVCSDir(unixPath string, isDir bool) bool {
	parts := strings.Split(unixPath, "/")
	for i, part := range parts {
		if part == ".git" && (isDir || i < len(parts)-1) {
			return true
		}
	}
	return false
}
