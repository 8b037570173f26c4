package pathmatch

import "testing"

func TestSingleStarStopsAtSlash(t *testing.T) {
	t.Parallel()

	m := Compile("foo*bar")

	if !m.Matches("foobar") {
		t.Fatalf("foobar must match")
	}

	if !m.Matches("foo2bar") {
		t.Fatalf("foo2bar must match")
	}

	if m.Matches("foo/bar") {
		t.Fatalf("foo/bar must not match: * never crosses /")
	}
}

func TestGlobstarMatchesEverything(t *testing.T) {
	t.Parallel()

	m := Compile("**")

	for _, path := range []string{"foo.py", ".hidden", "a/b/c/d.txt", ".git/config"} {
		if !m.Matches(path) {
			t.Fatalf("** must match %q", path)
		}
	}
}

func TestGlobstarSlashMatchesZeroSegments(t *testing.T) {
	t.Parallel()

	m := Compile("**/*.py")

	for _, path := range []string{"foo.py", ".foo.py", "src/foo.py", "a/b/c/foo.py"} {
		if !m.Matches(path) {
			t.Fatalf("**/*.py must match %q", path)
		}
	}

	if m.Matches("src/foo.js") {
		t.Fatalf("**/*.py must not match src/foo.js")
	}
}

func TestEscapedAsterisks(t *testing.T) {
	t.Parallel()

	m := Compile(`\*\*.py`)

	if !m.Matches("**.py") {
		t.Fatalf(`\*\*.py must match the literal string "**.py"`)
	}

	if m.Matches("foo.py") {
		t.Fatalf(`\*\*.py must not match foo.py`)
	}

	mixed := Compile(`\**.py`)

	if !mixed.Matches("*foo.py") {
		t.Fatalf(`\**.py must match a path starting with a literal asterisk`)
	}

	if mixed.Matches("foo.py") {
		t.Fatalf(`\**.py must not match a path without the leading asterisk`)
	}
}

func TestEscapedBackslash(t *testing.T) {
	t.Parallel()

	m := Compile(`a\\b`)

	if !m.Matches(`a\b`) {
		t.Fatalf(`a\\b must match the literal a\b`)
	}

	if m.Matches("ab") {
		t.Fatalf(`a\\b must not match ab`)
	}
}

func TestAnchoring(t *testing.T) {
	t.Parallel()

	m := Compile("foo.py")

	if m.Matches("src/foo.py") {
		t.Fatalf("unanchored suffix must not match")
	}

	if m.Matches("foo.pyc") {
		t.Fatalf("prefix must not match")
	}
}

func TestMultiplePatternsCombineViaOr(t *testing.T) {
	t.Parallel()

	m := Compile("*.go", "docs/**")

	if !m.Matches("main.go") {
		t.Fatalf("main.go must match first pattern")
	}

	if !m.Matches("docs/a/b.md") {
		t.Fatalf("docs/a/b.md must match second pattern")
	}

	if m.Matches("src/main.go") {
		t.Fatalf("src/main.go must not match either pattern")
	}
}

func TestNoPatternsMatchNothing(t *testing.T) {
	t.Parallel()

	m := Compile()

	if m.Matches("anything") {
		t.Fatalf("empty matcher must match nothing")
	}

	var nilMatcher *Matcher
	if nilMatcher.Matches("anything") {
		t.Fatalf("nil matcher must match nothing")
	}
}

func TestParentTraversalPatternNeverMatches(t *testing.T) {
	t.Parallel()

	m := Compile("../foo.py")

	for _, path := range []string{"foo.py", "src/foo.py", "a/foo.py"} {
		if m.Matches(path) {
			t.Fatalf("../foo.py must never match normalized path %q", path)
		}
	}
}

func TestEscapingQueryNeverMatches(t *testing.T) {
	t.Parallel()

	m := Compile("**")

	for _, path := range []string{"..", "../foo.py", "/etc/passwd"} {
		if m.Matches(path) {
			t.Fatalf("out-of-scope path %q must not match", path)
		}
	}
}
