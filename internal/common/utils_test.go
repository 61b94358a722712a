package common

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  https://example.es/  ", "https://example.es/"},
		{"https://example.es/servicios,", "https://example.es/servicios"},
		{"[web](https://example.es/contacto)", "https://example.es/contacto"},
		{"<https://example.es>", "https://example.es"},
	}
	for _, tt := range tests {
		if got := SanitizeURL(tt.in); got != tt.want {
			t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeAndValidateURLs(t *testing.T) {
	valid, invalid := SanitizeAndValidateURLs([]string{
		"https://example.es/",
		"http://127.0.0.1:8080/page",
		"https://example.es?lang=ca",
		"example.es",
		"ftp://example.es/file",
		"https://exa mple.es/",
		"",
	})

	wantValid := []string{"https://example.es/", "http://127.0.0.1:8080/page", "https://example.es?lang=ca"}
	if !reflect.DeepEqual(valid, wantValid) {
		t.Errorf("valid = %v, want %v", valid, wantValid)
	}
	if len(invalid) != 4 {
		t.Errorf("invalid = %v, want 4 entries", invalid)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		quiet bool
		want  slog.Level
	}{
		{"debug", false, slog.LevelDebug},
		{"info", false, slog.LevelInfo},
		{"WARN", false, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"bogus", false, slog.LevelInfo},
		{"debug", true, slog.LevelError},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := NewLogger(&buf, tt.level, tt.quiet)
		if !logger.Enabled(context.Background(), tt.want) {
			t.Errorf("level %q quiet=%v: %v should be enabled", tt.level, tt.quiet, tt.want)
		}
		if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-1) {
			t.Errorf("level %q quiet=%v: below %v should be disabled", tt.level, tt.quiet, tt.want)
		}
	}
}

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# client sites\nhttps://example.es/\n\n  https://example.es/contacto  \n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadURLFile(path)
	if err != nil {
		t.Fatalf("ReadURLFile() error = %v", err)
	}
	want := []string{"https://example.es/", "https://example.es/contacto"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadURLFile() = %v, want %v", got, want)
	}

	if _, err := ReadURLFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadURLFile() on missing file should fail")
	}
}
