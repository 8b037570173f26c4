package reuse

import (
	"errors"
	"testing"

	"github.com/relictool/relic/internal/copyright"
	"github.com/relictool/relic/internal/licenses"
)

func expr(t *testing.T, text string) licenses.Expression {
	t.Helper()
	e, err := licenses.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return e
}

func notice(t *testing.T, text string) copyright.Notice {
	t.Helper()
	n, err := copyright.ParseNotice(text)
	if err != nil {
		t.Fatalf("ParseNotice(%q): %v", text, err)
	}
	return n
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		text string
		want Precedence
	}{
		{"", PrecedenceClosest},
		{"closest", PrecedenceClosest},
		{"aggregate", PrecedenceAggregate},
		{"override", PrecedenceOverride},
	}

	for _, tt := range tests {
		got, err := ParsePrecedence(tt.text)
		if err != nil {
			t.Errorf("ParsePrecedence(%q): %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrecedence(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}

	if _, err := ParsePrecedence("sometimes"); !errors.Is(err, ErrPrecedence) {
		t.Errorf("error = %v, want ErrPrecedence", err)
	}
}

func TestNewDeduplicates(t *testing.T) {
	info := New(
		[]licenses.Expression{expr(t, "MIT"), expr(t, "MIT"), expr(t, "Apache-2.0")},
		[]copyright.Notice{notice(t, "Copyright 2017 Jane Doe"), notice(t, "Copyright 2017 Jane Doe")},
		[]string{"b", "a", "b"},
	)

	if len(info.Expressions) != 2 {
		t.Errorf("got %d expressions, want 2", len(info.Expressions))
	}
	if info.Expressions[0].String() != "Apache-2.0" {
		t.Errorf("expressions not sorted: %v", info.Expressions)
	}
	if len(info.Copyrights) != 1 {
		t.Errorf("got %d copyrights, want 1", len(info.Copyrights))
	}
	if len(info.Contributors) != 2 || info.Contributors[0] != "a" {
		t.Errorf("contributors = %v, want [a b]", info.Contributors)
	}
}

func TestUnion(t *testing.T) {
	a := New([]licenses.Expression{expr(t, "MIT")}, nil, nil)
	a.Path = "src/main.go"
	a.SourcePath = "src/main.go"
	a.SourceType = SourceFileHeader

	b := New([]licenses.Expression{expr(t, "Apache-2.0")},
		[]copyright.Notice{notice(t, "Copyright 2017 Jane Doe")}, nil)
	b.Path = "src/main.go"
	b.SourcePath = "REUSE.toml"
	b.SourceType = SourceNestedConfig

	got := Union(a, b)

	if len(got.Expressions) != 2 || len(got.Copyrights) != 1 {
		t.Errorf("union collections wrong: %+v", got)
	}
	if got.SourcePath != "src/main.go" || got.SourceType != SourceFileHeader {
		t.Errorf("scalar metadata should come from the first operand: %+v", got)
	}

	// Union of nothing is the empty record.
	empty := Union()
	if empty.ContainsInfo() {
		t.Errorf("empty union contains info: %+v", empty)
	}
}

func TestContains(t *testing.T) {
	var empty Info
	if empty.ContainsCopyrightOrLicensing() || empty.ContainsInfo() {
		t.Error("zero value should contain nothing")
	}

	contributorsOnly := New(nil, nil, []string{"Jane Doe"})
	if contributorsOnly.ContainsCopyrightOrLicensing() {
		t.Error("contributors alone are not copyright or licensing")
	}
	if !contributorsOnly.ContainsInfo() {
		t.Error("contributors should count as info")
	}

	licensed := New([]licenses.Expression{expr(t, "MIT")}, nil, nil)
	if !licensed.ContainsCopyrightOrLicensing() {
		t.Error("license expression should count")
	}
}

func TestCopyIsDeep(t *testing.T) {
	orig := New([]licenses.Expression{expr(t, "MIT")}, nil, []string{"Jane Doe"})
	dup := orig.Copy()
	dup.Contributors[0] = "changed"

	if orig.Contributors[0] != "Jane Doe" {
		t.Error("Copy shares backing storage")
	}
}

func TestWithHelpers(t *testing.T) {
	info := New([]licenses.Expression{expr(t, "MIT")},
		[]copyright.Notice{notice(t, "Copyright 2017 Jane Doe")}, nil)

	tagged := info.WithPath("a.go").WithSourcePath("REUSE.toml").WithSourceType(SourceNestedConfig)
	if tagged.Path != "a.go" || tagged.SourcePath != "REUSE.toml" || tagged.SourceType != SourceNestedConfig {
		t.Errorf("provenance not applied: %+v", tagged)
	}
	if info.Path != "" {
		t.Error("With helpers mutated the receiver")
	}

	if got := info.WithoutExpressions(); len(got.Expressions) != 0 || len(got.Copyrights) != 1 {
		t.Errorf("WithoutExpressions: %+v", got)
	}
	if got := info.WithoutCopyrights(); len(got.Copyrights) != 0 || len(got.Expressions) != 1 {
		t.Errorf("WithoutCopyrights: %+v", got)
	}
}
