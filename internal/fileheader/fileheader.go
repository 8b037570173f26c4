// Package fileheader extracts reuse information from a file's own
// contents: license identifier tags, copyright notices, and contributor
// tags, wherever they appear in the text.
package fileheader

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/relictool/relic/internal/copyright"
	"github.com/relictool/relic/internal/licenses"
	"github.com/relictool/relic/internal/reuse"
)

// Tags recognized in file contents. The values run to the end of the
// line, minus trailing comment closers.
var (
	licenseTagRE     = regexp.MustCompile(`SPDX-License-Identifier:[ \t]*(.+)`)
	contributorTagRE = regexp.MustCompile(`SPDX-FileContributor:[ \t]*(.+)`)
	noticeStartRE    = regexp.MustCompile(`SPDX-FileCopyrightText:|SPDX-SnippetCopyrightText:|Copyright\b|©`)
)

// commentClosers are stripped from the tail of an extracted value so tags
// inside block comments parse cleanly.
var commentClosers = []string{"*/", "-->", "--}", "#}"}

// Extract scans raw file contents and returns everything it found,
// tagged with file-header provenance. Unparsable lines are reported
// through the joined error; extraction continues past them, so the
// returned info is valid even when the error is non-nil.
func Extract(relPath string, data []byte) (reuse.Info, error) {
	var exprs []licenses.Expression
	var notices []copyright.Notice
	var contributors []string
	var errs []error

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if m := licenseTagRE.FindStringSubmatch(line); m != nil {
			expr, err := licenses.Parse(cleanValue(m[1]))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s:%d: %w", relPath, lineno, err))
				continue
			}
			exprs = append(exprs, expr)
			continue
		}

		if m := contributorTagRE.FindStringSubmatch(line); m != nil {
			contributors = append(contributors, cleanValue(m[1]))
			continue
		}

		if loc := noticeStartRE.FindStringIndex(line); loc != nil {
			n, err := copyright.ParseNotice(cleanValue(line[loc[0]:]))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s:%d: %w", relPath, lineno, err))
				continue
			}
			notices = append(notices, n)
		}
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("scan %s: %w", relPath, err))
	}

	info := reuse.New(exprs, notices, contributors)
	info.Path = relPath
	info.SourcePath = relPath
	info.SourceType = reuse.SourceFileHeader
	return info, errors.Join(errs...)
}

// cleanValue trims whitespace and any trailing comment closer from an
// extracted tag value.
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	for _, closer := range commentClosers {
		if trimmed, ok := strings.CutSuffix(value, closer); ok {
			value = strings.TrimSpace(trimmed)
			break
		}
	}
	return value
}
