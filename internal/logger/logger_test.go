package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)

	l.Debug("below threshold")
	l.Info("at threshold")

	out := buf.String()
	if strings.Contains(out, "below threshold") {
		t.Errorf("debug line written at info threshold: %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "at threshold") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestVerboseLowersThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true, false)

	l.Debug("trace")
	if !strings.Contains(buf.String(), "DEBUG") {
		t.Errorf("verbose logger dropped a debug line: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)

	l.SetLevel("error")
	l.Warn("suppressed")
	l.Error("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("warn line written at error threshold: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("error line missing: %q", out)
	}

	buf.Reset()
	l.SetLevel("not-a-level")
	l.Info("default threshold")
	if !strings.Contains(buf.String(), "default threshold") {
		t.Errorf("unknown level name did not fall back to info: %q", buf.String())
	}
}
