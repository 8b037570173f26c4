package annotations

import (
	"errors"
	"strings"
	"testing"

	"github.com/relictool/relic/internal/reuse"
)

func TestParseSource(t *testing.T) {
	data := []byte(`
version = 1

[[annotations]]
path = "src/**"
precedence = "aggregate"
SPDX-FileCopyrightText = "2017 Jane Doe"
SPDX-License-Identifier = "MIT"

[[annotations]]
path = ["src/main.go", "src/main_test.go"]
SPDX-FileCopyrightText = ["2018 John Doe", "2019 Example Corp"]
SPDX-License-Identifier = "Apache-2.0"
`)

	src, err := ParseSource("REUSE.toml", data)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	if src.Version != 1 {
		t.Errorf("version = %d, want 1", src.Version)
	}
	if src.Directory != "" {
		t.Errorf("directory = %q, want root", src.Directory)
	}
	if len(src.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(src.Items))
	}

	first := src.Items[0]
	if first.Precedence != reuse.PrecedenceAggregate {
		t.Errorf("precedence = %q, want aggregate", first.Precedence)
	}
	if len(first.Notices) != 1 || first.Notices[0].Name != "Jane Doe" {
		t.Errorf("unexpected notices: %+v", first.Notices)
	}

	second := src.Items[1]
	if second.Precedence != reuse.PrecedenceClosest {
		t.Errorf("default precedence = %q, want closest", second.Precedence)
	}
	if len(second.Paths) != 2 || len(second.Notices) != 2 {
		t.Errorf("array fields not coerced: %+v", second)
	}
}

func TestParseSourcePrefixlessCopyright(t *testing.T) {
	// Declared copyright values usually carry just the year and holder.
	src, err := ParseSource("REUSE.toml", []byte(`
version = 1

[[annotations]]
path = "**"
SPDX-FileCopyrightText = ["2017 Jane Doe", "Copyright (C) 2019 Example Corp"]
SPDX-License-Identifier = "MIT"
`))
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	notices := src.Items[0].Notices
	if len(notices) != 2 {
		t.Fatalf("got %d notices, want 2", len(notices))
	}

	if notices[0].Name != "Jane Doe" {
		t.Errorf("holder = %q, want Jane Doe", notices[0].Name)
	}
	if len(notices[0].Years) != 1 || notices[0].Years[0].Start != "2017" {
		t.Errorf("years = %+v, want 2017", notices[0].Years)
	}
	if notices[1].Name != "Example Corp" {
		t.Errorf("holder = %q, want Example Corp", notices[1].Name)
	}
}

func TestParseSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "missing version",
			data: "[[annotations]]\npath = \"*\"\n",
			want: ErrConfigValue,
		},
		{
			name: "missing path",
			data: "version = 1\n[[annotations]]\nSPDX-License-Identifier = \"MIT\"\n",
			want: ErrConfigValue,
		},
		{
			name: "integer path",
			data: "version = 1\n[[annotations]]\npath = 12\n",
			want: ErrConfigType,
		},
		{
			name: "mixed array",
			data: "version = 1\n[[annotations]]\npath = [\"a\", 2]\n",
			want: ErrConfigType,
		},
		{
			name: "unknown precedence",
			data: "version = 1\n[[annotations]]\npath = \"*\"\nprecedence = \"sometimes\"\n",
			want: reuse.ErrPrecedence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("sub/REUSE.toml", []byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), "sub/REUSE.toml") {
				t.Errorf("error lacks source path: %v", err)
			}
		})
	}
}

func TestFindMatchingItemLastWins(t *testing.T) {
	data := []byte(`
version = 1

[[annotations]]
path = "**"
SPDX-License-Identifier = "MIT"

[[annotations]]
path = "docs/**"
SPDX-License-Identifier = "CC0-1.0"
`)

	src, err := ParseSource("REUSE.toml", data)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	item, ok := src.FindMatchingItem("docs/index.md")
	if !ok {
		t.Fatal("no item matched docs/index.md")
	}
	if got := item.Expressions[0].String(); got != "CC0-1.0" {
		t.Errorf("matched %q, want the later declaration", got)
	}

	item, ok = src.FindMatchingItem("main.go")
	if !ok {
		t.Fatal("no item matched main.go")
	}
	if got := item.Expressions[0].String(); got != "MIT" {
		t.Errorf("matched %q, want MIT", got)
	}

	if _, ok := src.FindMatchingItem("../escape.go"); ok {
		t.Error("item matched a path outside the scope")
	}
}

func TestReuseInfoOf(t *testing.T) {
	src, err := ParseSource("sub/REUSE.toml", []byte(`
version = 1
[[annotations]]
path = "**"
precedence = "aggregate"
SPDX-License-Identifier = "MIT"
`))
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	got := src.ReuseInfoOf("lib/a.go")
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}

	info, ok := got[reuse.PrecedenceAggregate]
	if !ok {
		t.Fatalf("missing aggregate entry: %+v", got)
	}
	if info.SourcePath != "sub/REUSE.toml" || info.Path != "lib/a.go" {
		t.Errorf("provenance: %+v", info)
	}

	if src.ReuseInfoOf("../outside.go") != nil {
		t.Error("info returned for a non-matching path")
	}
}

func TestSourceDepth(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"REUSE.toml", 0},
		{"sub/REUSE.toml", 1},
		{"a/b/c/REUSE.toml", 3},
	}

	for _, tt := range tests {
		src := &Source{Path: tt.path, Directory: directoryOf(tt.path)}
		if got := src.Depth(); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
