package slogutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandler_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("registered class", "class", "com.example.Calc", "fields", 3)

	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line should end with newline: %q", line)
	}
	for _, want := range []string{"[info] registered class |", "class=com.example.Calc", "fields=3"} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}
}

func TestHandler_NoAttrsNoSeparator(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("sealed")

	if strings.Contains(buf.String(), "|") {
		t.Errorf("separator written without attributes: %q", buf.String())
	}
}

func TestHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("parse failed", "path", "My Sources/A.java", "reason", "")

	out := buf.String()
	if !strings.Contains(out, `path="My Sources/A.java"`) {
		t.Errorf("path not quoted: %q", out)
	}
	if !strings.Contains(out, `reason=""`) {
		t.Errorf("empty value not quoted: %q", out)
	}
}

func TestHandler_LevelNames(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{"debug", func(l *slog.Logger) { l.Debug("m") }, "[debug]"},
		{"info", func(l *slog.Logger) { l.Info("m") }, "[info]"},
		{"warn", func(l *slog.Logger) { l.Warn("m") }, "[warn]"},
		{"error", func(l *slog.Logger) { l.Error("m") }, "[error]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, slog.LevelDebug))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestHandler_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn leaked: %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).With("component", "loader").WithGroup("file")

	logger.Info("parsed", "path", "A.java")

	out := buf.String()
	if !strings.Contains(out, "component=loader") {
		t.Errorf("missing pre-bound attribute: %q", out)
	}
	if !strings.Contains(out, "file.path=A.java") {
		t.Errorf("missing grouped key: %q", out)
	}
}

type classRef string

func (c classRef) LogValue() slog.Value { return slog.StringValue("class " + string(c)) }

func TestHandler_WithRoot(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "src", "com", "example", "Calc.java")
	outside := filepath.Join(filepath.Dir(root), "Other.java")

	tests := []struct {
		name string
		attr []any
		want string
	}{
		{"inside root", []any{"path", inside}, "path=src/com/example/Calc.java"},
		{"camel case key", []any{"prevPath", inside}, "prevPath=src/com/example/Calc.java"},
		{"outside root", []any{"path", outside}, "path=" + outside},
		{"relative kept", []any{"path", "A.java"}, "path=A.java"},
		{"other keys untouched", []any{"dir", inside}, "dir=" + inside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}).WithRoot(root)
			slog.New(h).Info("parsed", tt.attr...)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestHandler_ResolvesLogValuer(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("registered", "class", classRef("com.example.Calc"))

	if !strings.Contains(buf.String(), `class="class com.example.Calc"`) {
		t.Errorf("LogValuer not resolved: %q", buf.String())
	}
}

func TestNewLoggerForFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerForFormat(&buf, slog.LevelInfo, "JSON").Info("indexed", "classes", 2)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "indexed" {
		t.Errorf("msg = %v, want indexed", rec["msg"])
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "javadox.log")

	logger, f, err := NewFileLogger(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Info("hello")
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "[info] hello") {
		t.Errorf("log file content = %q", data)
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LevelFromString(tt.input); got != tt.want {
				t.Errorf("LevelFromString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{7, false, slog.LevelDebug},
		{0, true, Silent},
		{3, true, Silent},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := NewLogger(&bytes.Buffer{}, slog.LevelInfo)
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return a non-nil logger unchanged")
	}
	// A discard logger accepts every level without output.
	d := NewDiscardLogger()
	d.Error("ignored")
}

func TestTeeHandler(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	logger := NewTeeLogger(
		NewHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		NewHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	).With("run", "r1")

	logger.Info("info message")
	logger.Warn("warn message")

	if !strings.Contains(infoBuf.String(), "info message") || !strings.Contains(infoBuf.String(), "warn message") {
		t.Errorf("info sink = %q", infoBuf.String())
	}
	if strings.Contains(warnBuf.String(), "info message") {
		t.Errorf("warn sink received info: %q", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), "run=r1") {
		t.Errorf("warn sink missing bound attr: %q", warnBuf.String())
	}
}
