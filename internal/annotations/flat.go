package annotations

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/relictool/relic/internal/copyright"
	"github.com/relictool/relic/internal/licenses"
	"github.com/relictool/relic/internal/reuse"
)

// FlatFileName is the conventional location of the legacy flat copyright
// file, relative to the project root.
const FlatFileName = ".reuse/dep5"

// FlatSource is the legacy non-hierarchical source: blank-line-separated
// paragraphs, each binding a file glob to one license and a block of
// copyright text. Flat contributions always resolve under aggregate
// precedence and a project uses either a flat source or nested sources,
// never both.
type FlatSource struct {
	// Path is the file's path relative to the project root.
	Path string
	// Paragraphs are in declaration order; on lookup the last matching
	// paragraph wins.
	Paragraphs []Paragraph
}

// Paragraph is one Files/Copyright/License block.
type Paragraph struct {
	// FilesGlob is the raw glob. In this legacy dialect "*" crosses "/"
	// and "?" matches any single character.
	FilesGlob string
	// License is the parsed license expression.
	License licenses.Expression
	// Notices are the parsed copyright lines.
	Notices []copyright.Notice

	re *regexp.Regexp
}

// Matches reports whether the paragraph's glob matches a root-relative path.
func (p Paragraph) Matches(relPath string) bool {
	return p.re != nil && p.re.MatchString(relPath)
}

// ParseFlatSource parses the legacy flat format. Paragraphs without a
// Files field (such as a leading header paragraph) are skipped.
func ParseFlatSource(sourcePath string, data []byte) (*FlatSource, error) {
	src := &FlatSource{Path: sourcePath}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}

		paragraph, ok, err := parseParagraph(sourcePath, block)
		block = block[:0]
		if err != nil {
			return err
		}

		if ok {
			src.Paragraphs = append(src.Paragraphs, paragraph)
		}

		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		block = append(block, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", sourcePath, err)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return src, nil
}

// Lookup returns the last paragraph whose glob matches the path.
func (s *FlatSource) Lookup(relPath string) (Paragraph, bool) {
	for i := len(s.Paragraphs) - 1; i >= 0; i-- {
		if s.Paragraphs[i].Matches(relPath) {
			return s.Paragraphs[i], true
		}
	}

	return Paragraph{}, false
}

// Info returns the paragraph's contribution tagged with flat provenance.
func (s *FlatSource) Info(p Paragraph, relPath string) reuse.Info {
	info := reuse.New([]licenses.Expression{p.License}, p.Notices, nil)
	info.Path = relPath
	info.SourcePath = s.Path
	info.SourceType = reuse.SourceFlatParagraph
	return info
}

// parseParagraph parses one block of non-blank lines. The bool result is
// false for blocks without a Files field.
func parseParagraph(sourcePath string, lines []string) (Paragraph, bool, error) {
	fields := make(map[string][]string)
	current := ""

	for _, line := range lines {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			// Continuation of the previous field.
			if current == "" {
				return Paragraph{}, false, fmt.Errorf("%s: %w: continuation line without field", sourcePath, ErrConfigValue)
			}

			fields[current] = append(fields[current], strings.TrimSpace(line))
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return Paragraph{}, false, fmt.Errorf("%s: %w: malformed line %q", sourcePath, ErrConfigValue, line)
		}

		current = strings.ToLower(strings.TrimSpace(name))
		if v := strings.TrimSpace(value); v != "" {
			fields[current] = append(fields[current], v)
		} else {
			fields[current] = []string{}
		}
	}

	globs, ok := fields["files"]
	if !ok {
		return Paragraph{}, false, nil
	}

	if len(globs) == 0 {
		return Paragraph{}, false, fmt.Errorf("%s: %w: empty Files field", sourcePath, ErrConfigValue)
	}

	licenseLines := fields["license"]
	if len(licenseLines) == 0 {
		return Paragraph{}, false, fmt.Errorf("%s: %w: paragraph without License", sourcePath, ErrConfigValue)
	}

	expr, err := licenses.Parse(licenseLines[0])
	if err != nil {
		return Paragraph{}, false, fmt.Errorf("%s: %w", sourcePath, err)
	}

	var notices []copyright.Notice
	for _, line := range fields["copyright"] {
		n, err := copyright.ParseNotice(line)
		if err != nil {
			// The legacy format conventionally omits the word
			// "Copyright" from its holder lines.
			n, err = copyright.ParseNotice("Copyright " + line)
			if err != nil {
				return Paragraph{}, false, fmt.Errorf("%s: %w", sourcePath, err)
			}
		}
		notices = append(notices, n)
	}

	glob := strings.Join(globs, " ")
	return Paragraph{
		FilesGlob: glob,
		License:   expr,
		Notices:   notices,
		re:        compileFlatGlob(glob),
	}, true, nil
}

// compileFlatGlob translates the legacy glob dialect, where "*" crosses
// path separators. A failed compile degrades to matching nothing.
func compileFlatGlob(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`\A`)

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	b.WriteString(`\z`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}

	return re
}
