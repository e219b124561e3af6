package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewNamed("cpu", LevelInfo, &buf)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("failed %s", "here")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug message to be dropped, got %q", out)
	}
	if !strings.Contains(out, "[INFO]\tcpu\tshown 2\n") {
		t.Errorf("expected info line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR]\tcpu\tfailed here\n") {
		t.Errorf("expected error line, got %q", out)
	}
}
