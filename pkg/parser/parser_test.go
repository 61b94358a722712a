package parser

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const samplePage = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>  Asesoría fiscal
     en Barcelona </title>
  <meta name="description" content="Asesores fiscales y legales para empresas.">
  <meta name="robots" content="INDEX, follow">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta property="og:title" content="Asesoría">
  <meta property="og:image" content="https://example.es/og.png">
  <meta name="twitter:card" content="summary">
  <link rel="canonical" href="https://example.es/">
  <link rel="shortcut icon" href="/favicon.ico">
  <link rel="alternate" hreflang="ca" href="https://example.es/ca/">
  <link rel="alternate" hreflang="x-default" href="https://example.es/">
  <script type="application/ld+json">{"@type":"Organization"}</script>
</head>
<body>
  <h1>Asesoría</h1>
  <h2>Servicios</h2>
  <p>Uno dos tres</p>
  <img src="a.png" alt="Equipo">
  <img src="b.png">
  <script>var hidden = "words that should not count";</script>
  <a href="/servicios">Servicios</a>
  <a href="https://blog.example.es/post">Blog</a>
  <a href="https://www.linkedin.com/company/x" aria-label="LinkedIn"></a>
  <a href="mailto:info@example.es">Email</a>
  <a href="#top">Top</a>
  <a href="javascript:void(0)">noop</a>
</body>
</html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseHTML(html)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	return doc
}

func TestExtractMetadata(t *testing.T) {
	meta := ExtractMetadata(mustDoc(t, samplePage))

	if meta.Title != "Asesoría fiscal en Barcelona" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Lang != "es" {
		t.Errorf("Lang = %q, want es", meta.Lang)
	}
	if meta.Robots != "index, follow" {
		t.Errorf("Robots = %q, want lowercased", meta.Robots)
	}
	if meta.Canonical != "https://example.es/" {
		t.Errorf("Canonical = %q", meta.Canonical)
	}
	if meta.Favicon != "/favicon.ico" {
		t.Errorf("Favicon = %q", meta.Favicon)
	}
	if meta.Charset != "utf-8" {
		t.Errorf("Charset = %q", meta.Charset)
	}
	if meta.OpenGraph["title"] != "Asesoría" || meta.OpenGraph["image"] == "" {
		t.Errorf("OpenGraph = %v", meta.OpenGraph)
	}
	if meta.Twitter["card"] != "summary" {
		t.Errorf("Twitter = %v", meta.Twitter)
	}
	if len(meta.Hreflang) != 2 || meta.Hreflang[1].Lang != "x-default" {
		t.Errorf("Hreflang = %v", meta.Hreflang)
	}
	if meta.H1Count != 1 || meta.H2Count != 1 {
		t.Errorf("H1Count = %d, H2Count = %d, want 1/1", meta.H1Count, meta.H2Count)
	}
	if meta.ImageCount != 2 || meta.ImagesWithAlt != 1 {
		t.Errorf("images = %d/%d, want 1/2 with alt", meta.ImagesWithAlt, meta.ImageCount)
	}
	if meta.JSONLDCount != 1 {
		t.Errorf("JSONLDCount = %d, want 1", meta.JSONLDCount)
	}
}

func TestVisibleText_SkipsScripts(t *testing.T) {
	text := VisibleText(mustDoc(t, samplePage))
	if strings.Contains(text, "should not count") {
		t.Errorf("VisibleText() contains script body: %q", text)
	}
	if !strings.Contains(text, "Uno dos tres") {
		t.Errorf("VisibleText() = %q, missing paragraph", text)
	}
}

func TestExtractLinks(t *testing.T) {
	base, _ := url.Parse("https://www.example.es/inicio")
	links := ExtractLinks(mustDoc(t, samplePage), base)

	if len(links) != 4 {
		t.Fatalf("ExtractLinks() returned %d links, want 4: %+v", len(links), links)
	}
	tests := []struct {
		href     string
		internal bool
		text     string
	}{
		{"https://www.example.es/servicios", true, "Servicios"},
		{"https://blog.example.es/post", true, "Blog"},
		{"https://www.linkedin.com/company/x", false, "LinkedIn"},
		{"mailto:info@example.es", false, "Email"},
	}
	for i, tt := range tests {
		if links[i].Href != tt.href || links[i].Internal != tt.internal || links[i].Text != tt.text {
			t.Errorf("links[%d] = %+v, want href=%s internal=%v text=%s", i, links[i], tt.href, tt.internal, tt.text)
		}
	}
}

func TestSameSite(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"https://example.co.uk/", "https://shop.example.co.uk/x", true},
		{"https://example.co.uk/", "https://other.co.uk/", false},
		{"http://127.0.0.1:8080/", "http://127.0.0.1:9090/", true},
		{"http://localhost/", "http://example.com/", false},
	}
	for _, tt := range tests {
		a, _ := url.Parse(tt.a)
		b, _ := url.Parse(tt.b)
		if got := SameSite(a, b); got != tt.want {
			t.Errorf("SameSite(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestToMarkdown(t *testing.T) {
	doc := mustDoc(t, `<div><h2>Services</h2><p>Tax  and
	legal.</p><ul><li>Audit</li></ul><pre><code class="language-go">x := 1</code></pre></div>`)
	got := toMarkdown(doc.Selection)
	want := "## Services\n\nTax  and legal.\n\n- Audit\n\n```go\nx := 1\n```"
	if got != want {
		t.Errorf("toMarkdown() = %q, want %q", got, want)
	}
}
