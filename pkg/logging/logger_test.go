package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LevelEnvVar, tt.envValue)
			if level := getLogLevelFromEnv(); level != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestRunID(t *testing.T) {
	t.Run("generate run ID", func(t *testing.T) {
		id1 := GenerateRunID()
		id2 := GenerateRunID()
		if id1 == "" || id1 == id2 {
			t.Errorf("GenerateRunID() returned %q and %q", id1, id2)
		}
		if len(id1) != 16 {
			t.Errorf("GenerateRunID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("context round trip", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "run-1")
		if got := GetRunID(ctx); got != "run-1" {
			t.Errorf("GetRunID() = %q, want %q", got, "run-1")
		}
	})

	t.Run("empty ID is generated", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "")
		if GetRunID(ctx) == "" {
			t.Error("expected a generated run ID")
		}
	})

	t.Run("missing ID", func(t *testing.T) {
		if got := GetRunID(context.Background()); got != "" {
			t.Errorf("GetRunID() = %q, want empty", got)
		}
	})
}

func TestLogger_IncludesRunIDAndError(t *testing.T) {
	t.Setenv(LevelEnvVar, "DEBUG")
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	ctx := WithRunID(context.Background(), "abc123")
	logger.Error(ctx, "backend failed", errors.New("no display"), "renderer", "engo")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["run_id"] != "abc123" {
		t.Errorf("run_id = %v", entry["run_id"])
	}
	if entry["error"] != "no display" {
		t.Errorf("error = %v", entry["error"])
	}
	if entry["renderer"] != "engo" {
		t.Errorf("renderer = %v", entry["renderer"])
	}
}

func TestLogger_NonFiniteFloats(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Info(context.Background(), "forecast", "perihelion", math.Inf(1), "zoom", math.NaN())

	out := buf.String()
	if !strings.Contains(out, `"perihelion":"+Inf"`) || !strings.Contains(out, `"zoom":"NaN"`) {
		t.Errorf("non-finite floats not normalized: %s", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Setenv(LevelEnvVar, "WARN")
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden too")
	if buf.Len() != 0 {
		t.Errorf("expected no output below WARN, got %s", buf.String())
	}
	logger.Warn(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected WARN message to be logged")
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("window unavailable")

	if WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	wrapped := WrapError(base, "open %s backend", "engo")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost its cause")
	}
	if wrapped.Error() != "open engo backend: window unavailable" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}
