package report

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/insights"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/scoring"
)

func sampleSession() models.AuditSession {
	categories := checklist.CreateDefault()
	categories[0].Items[0].Status = models.StatusMissing
	categories[0].Items[0].Note = "Title | empty"
	categories[0].Items[1].Status = models.StatusCorrect
	categories = scoring.Recalculate(categories)
	return models.AuditSession{
		URL:             "https://example.es/",
		State:           models.StateAnalyzed,
		Categories:      categories,
		GlobalScore:     scoring.GlobalScore(categories),
		QuickWins:       insights.QuickWins(categories),
		Recommendations: insights.Recommendations(categories, insights.DefaultBands),
		TopKeywords:     []string{"fiscal:4", "empresas:3"},
		RawScrapedData:  &models.ScrapedData{URL: "https://example.es/", HTML: "<html>big</html>", Markdown: "# big"},
		AuditedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"markdown", "md", "", "json", "JSON", "yaml", "yml"} {
		f, err := ForFormat(name, false)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := ForFormat("pdf", false)
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleSession()))

	var decoded models.AuditSession
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "https://example.es/", decoded.URL)
	assert.Len(t, decoded.Categories, 7)
	require.NotNil(t, decoded.RawScrapedData)
	assert.Empty(t, decoded.RawScrapedData.HTML, "html stripped by default")

	buf.Reset()
	require.NoError(t, (&JSONFormatter{IncludeRaw: true}).Format(&buf, sampleSession()))
	assert.Contains(t, buf.String(), "big</html>")
}

func TestYAMLFormatter(t *testing.T) {
	session := sampleSession()
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, session))

	var decoded models.AuditSession
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, session.GlobalScore, decoded.GlobalScore)
	assert.Equal(t, session.QuickWins, decoded.QuickWins)
	assert.NotContains(t, buf.String(), "<html>big")
}

func TestFormatDoesNotMutateInput(t *testing.T) {
	session := sampleSession()
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, session))
	assert.Equal(t, "<html>big</html>", session.RawScrapedData.HTML)
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	session := sampleSession()
	require.NoError(t, (&MarkdownFormatter{}).Format(&buf, session))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# SEO audit: https://example.es/\n"))
	assert.Contains(t, out, "**"+strconv.Itoa(session.GlobalScore)+"/100**")
	assert.Contains(t, out, "| Technical SEO (SEO) | 25 |")
	assert.Contains(t, out, "## Quick wins")
	assert.Contains(t, out, "## Recommendations")
	assert.Contains(t, out, `Title \| empty`)
	assert.Contains(t, out, "fiscal:4, empresas:3")
}

func TestMarkdownFormatter_EmptySession(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Format(&buf, models.AuditSession{State: models.StateEmpty, Categories: checklist.CreateDefault()}))
	out := buf.String()
	assert.Contains(t, out, "# SEO audit: -")
	assert.NotContains(t, out, "## Quick wins")
	assert.NotContains(t, out, "Audited:")
}
