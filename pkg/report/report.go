// Package report renders audit sessions for export.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

// Formatter writes one audit session in a given format.
type Formatter interface {
	Format(w io.Writer, session models.AuditSession) error
	ContentType() string
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"markdown", "json", "yaml"}

// ForFormat returns the formatter for name. Exports drop the scraped HTML
// unless includeRaw is set.
func ForFormat(name string, includeRaw bool) (Formatter, error) {
	switch strings.ToLower(name) {
	case "markdown", "md", "":
		return &MarkdownFormatter{}, nil
	case "json":
		return &JSONFormatter{IncludeRaw: includeRaw}, nil
	case "yaml", "yml":
		return &YAMLFormatter{IncludeRaw: includeRaw}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected one of %s)", name, strings.Join(Formats, ", "))
	}
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct {
	IncludeRaw bool
}

func (f *JSONFormatter) Format(w io.Writer, session models.AuditSession) error {
	data, err := json.MarshalIndent(prepare(session, f.IncludeRaw), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

func (f *JSONFormatter) ContentType() string { return "application/json" }

// YAMLFormatter writes YAML.
type YAMLFormatter struct {
	IncludeRaw bool
}

func (f *YAMLFormatter) Format(w io.Writer, session models.AuditSession) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(prepare(session, f.IncludeRaw)); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}

func (f *YAMLFormatter) ContentType() string { return "application/yaml" }

// prepare strips page bodies from the scraped payload unless includeRaw.
func prepare(session models.AuditSession, includeRaw bool) models.AuditSession {
	if includeRaw || session.RawScrapedData == nil {
		return session
	}
	raw := session.RawScrapedData.Clone()
	raw.HTML = ""
	raw.Markdown = ""
	session.RawScrapedData = raw
	return session
}
