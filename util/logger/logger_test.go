package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, false)
	log := slog.New(h)
	log.Info("started", "cycle", 1)
	if !strings.Contains(buf.String(), "started") {
		t.Fatalf("expected log output to contain message, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "cycle=1") {
		t.Fatalf("expected attrs to be formatted as key=value, got %q", buf.String())
	}
}

func TestSetDebugTogglesField(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, false)
	if h.debug {
		t.Fatalf("debug should start false")
	}
	h.SetDebug(true)
	if !h.debug {
		t.Fatalf("SetDebug(true) should set debug")
	}
}
