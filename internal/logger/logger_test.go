package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	log := Default()
	if log == nil {
		t.Fatal("Default() returned nil")
	}
	log.Info("info message")
	log.Debug("debug message")
	log.Warn("warn message")
	log.Error("error message")
}

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("missing message, got: %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("missing attribute, got: %s", out)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Debug("also hidden")
	if buf.Len() > 0 {
		t.Fatalf("info/debug leaked at warn level: %s", buf.String())
	}

	log.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn missing, got: %s", buf.String())
	}
}

func TestWith(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("component", "engine")
	log.Info("child message")

	out := buf.String()
	if !strings.Contains(out, `"component":"engine"`) {
		t.Fatalf("missing bound attribute, got: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("roundtrip")
	if !strings.Contains(buf.String(), "roundtrip") {
		t.Fatalf("context logger lost, got: %s", buf.String())
	}
}

func TestFromContextDefault(t *testing.T) {
	t.Parallel()
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext with no logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPretty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Info("ready", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, "ready") {
		t.Fatalf("missing message, got: %s", out)
	}
	if !strings.Contains(out, "port=8080") {
		t.Fatalf("missing attribute, got: %s", out)
	}
}

func TestPrettyLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, slog.LevelWarn)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}

func TestPrettyQuotesStringsWithSpaces(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Info("generated", "text", "the cat sat")

	if !strings.Contains(buf.String(), `text="the cat sat"`) {
		t.Fatalf("string with spaces not quoted, got: %s", buf.String())
	}
}

func TestPrettyLeavesSimpleStringsBare(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Info("generated", "reason", "length-cap")

	out := buf.String()
	if !strings.Contains(out, "reason=length-cap") {
		t.Fatalf("missing attribute, got: %s", out)
	}
	if strings.Contains(out, `reason="length-cap"`) {
		t.Fatalf("simple string quoted, got: %s", out)
	}
}

func TestPrettyGroupsBecomeDottedKeys(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, slog.LevelInfo)

	log := slog.New(h.WithGroup("req").WithGroup("gen"))
	log.Info("done", "tokens", 5)

	if !strings.Contains(buf.String(), "req.gen.tokens=5") {
		t.Fatalf("nested groups not flattened, got: %s", buf.String())
	}
}

func TestPrettyWithAttrsKeepsPrefix(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, slog.LevelInfo)

	grouped := h.WithGroup("srv").WithAttrs([]slog.Attr{slog.String("addr", ":8080")})
	slog.New(grouped).Info("up")

	if !strings.Contains(buf.String(), "srv.addr=:8080") {
		t.Fatalf("group prefix lost on bound attrs, got: %s", buf.String())
	}
}

func TestPrettyEmptyGroupIsNoop(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, slog.LevelInfo)
	if h.WithGroup("") != slog.Handler(h) {
		t.Fatal("empty group should return the same handler")
	}
}
