package annotations

import (
	"fmt"
	"path"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/relictool/relic/internal/reuse"
)

// ConfigFileName is the nested configuration file recognized in any
// directory of a project.
const ConfigFileName = "REUSE.toml"

// Source is one parsed nested configuration file: an ordered list of
// rules scoped to the file's own directory.
type Source struct {
	// Path is the file's path relative to the project root, slash form.
	Path string
	// Directory is derived from Path; empty for a root-level file.
	Directory string
	// Version is the declared format version.
	Version int
	// Items are the rules in declaration order.
	Items []Item
}

// document mirrors the TOML layout. Fields that accept both a scalar and
// an array are decoded as any and coerced afterwards so that a wrong type
// is reported as a configuration type error, not a decoding failure.
type document struct {
	Version     int         `toml:"version"`
	Annotations []ruleTable `toml:"annotations"`
}

type ruleTable struct {
	Path       any    `toml:"path"`
	Precedence string `toml:"precedence"`
	Copyright  any    `toml:"SPDX-FileCopyrightText"`
	License    any    `toml:"SPDX-License-Identifier"`
}

// ParseSource parses one nested configuration file. sourcePath must be
// relative to the project root; it tags every returned error and becomes
// the provenance of the rules.
func ParseSource(sourcePath string, data []byte) (*Source, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", sourcePath, err)
	}

	if doc.Version < 1 {
		return nil, fmt.Errorf("%s: %w: missing or non-positive version", sourcePath, ErrConfigValue)
	}

	items := make([]Item, 0, len(doc.Annotations))
	for i, rule := range doc.Annotations {
		paths, err := stringList(sourcePath, "path", rule.Path)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}

		copyrights, err := stringList(sourcePath, "SPDX-FileCopyrightText", rule.Copyright)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}

		expressions, err := stringList(sourcePath, "SPDX-License-Identifier", rule.License)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}

		item, err := NewItem(sourcePath, paths, rule.Precedence, copyrights, expressions)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}

		items = append(items, item)
	}

	return &Source{
		Path:      sourcePath,
		Directory: directoryOf(sourcePath),
		Version:   doc.Version,
		Items:     items,
	}, nil
}

// FindMatchingItem scans items in reverse declaration order and returns
// the first whose matcher matches: within one file the last declared
// matching rule wins.
func (s *Source) FindMatchingItem(relPath string) (Item, bool) {
	for i := len(s.Items) - 1; i >= 0; i-- {
		if s.Items[i].Matches(relPath) {
			return s.Items[i], true
		}
	}

	return Item{}, false
}

// ReuseInfoOf returns the matching rule's contribution keyed by its
// precedence, or nil when no rule matches.
func (s *Source) ReuseInfoOf(relPath string) map[reuse.Precedence]reuse.Info {
	item, ok := s.FindMatchingItem(relPath)
	if !ok {
		return nil
	}

	info := item.Info()
	info.Path = relPath
	info.SourcePath = s.Path
	info.SourceType = reuse.SourceNestedConfig

	return map[reuse.Precedence]reuse.Info{item.Precedence: info}
}

// Depth is the number of directory levels below the project root.
func (s *Source) Depth() int {
	if s.Directory == "" {
		return 0
	}

	depth := 1
	for _, c := range s.Directory {
		if c == '/' {
			depth++
		}
	}

	return depth
}

// stringList coerces a scalar-or-array TOML value into a string slice.
func stringList(sourcePath, field string, raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %w: %s entry %T", sourcePath, ErrConfigType, field, entry)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w: %s is %T, want string or array of strings", sourcePath, ErrConfigType, field, raw)
	}
}

// directoryOf derives the root-relative directory of a config file path.
func directoryOf(sourcePath string) string {
	dir := path.Dir(sourcePath)
	if dir == "." || dir == "/" {
		return ""
	}

	return dir
}
