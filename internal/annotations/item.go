// Package annotations loads the path-scoped licensing rules declared in
// configuration files: the nested TOML format (one file per directory,
// any depth) and the legacy flat copyright-paragraph format.
package annotations

import (
	"fmt"

	"github.com/relictool/relic/internal/copyright"
	"github.com/relictool/relic/internal/licenses"
	"github.com/relictool/relic/internal/pathmatch"
	"github.com/relictool/relic/internal/reuse"
)

// Item is one path-scoped rule of a configuration file. Items are
// immutable once constructed; NewItem validates every field and fails
// fast, so an invalid Item can never exist.
type Item struct {
	// Paths are the raw glob patterns, relative to the owning file's
	// directory.
	Paths []string
	// Precedence is the merge policy, defaulting to closest.
	Precedence reuse.Precedence
	// CopyrightLines are the raw declared copyright lines.
	CopyrightLines []string
	// Notices are the parsed forms of CopyrightLines.
	Notices []copyright.Notice
	// Expressions are the parsed license expressions.
	Expressions []licenses.Expression

	matcher *pathmatch.Matcher
}

// NewItem validates and builds one rule. sourcePath tags every error with
// the owning configuration file.
func NewItem(sourcePath string, paths []string, precedence string, copyrightLines, expressionTexts []string) (Item, error) {
	if len(paths) == 0 {
		return Item{}, fmt.Errorf("%s: %w: annotation needs at least one path", sourcePath, ErrConfigValue)
	}

	prec, err := reuse.ParsePrecedence(precedence)
	if err != nil {
		return Item{}, fmt.Errorf("%s: %w", sourcePath, err)
	}

	notices := make([]copyright.Notice, 0, len(copyrightLines))
	for _, line := range copyrightLines {
		n, err := copyright.ParseNotice(line)
		if err != nil {
			// Declared copyright values conventionally carry just the
			// year and holder, without a prefix.
			n, err = copyright.ParseNotice("SPDX-FileCopyrightText: " + line)
			if err != nil {
				return Item{}, fmt.Errorf("%s: %w", sourcePath, err)
			}
		}
		notices = append(notices, n)
	}

	exprs := make([]licenses.Expression, 0, len(expressionTexts))
	for _, text := range expressionTexts {
		e, err := licenses.Parse(text)
		if err != nil {
			return Item{}, fmt.Errorf("%s: %w", sourcePath, err)
		}
		exprs = append(exprs, e)
	}

	return Item{
		Paths:          paths,
		Precedence:     prec,
		CopyrightLines: copyrightLines,
		Notices:        notices,
		Expressions:    exprs,
		matcher:        pathmatch.Compile(paths...),
	}, nil
}

// Matches reports whether the item applies to a path relative to the
// owning file's directory.
func (it Item) Matches(relPath string) bool {
	return it.matcher.Matches(relPath)
}

// Info returns the item's reuse-information fragment. Provenance fields
// are filled in by the resolver.
func (it Item) Info() reuse.Info {
	return reuse.New(it.Expressions, it.Notices, nil)
}
