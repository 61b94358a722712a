package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

const spanishSentence = "La asesoría fiscal de nuestro despacho acompaña a empresas y familias en la planificación fiscal, la contabilidad y los impuestos. "

func goodPage() *models.ScrapedData {
	html := `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>Asesoría fiscal y legal para empresas en Barcelona</title>
  <meta name="description" content="Despacho de asesoría fiscal, legal y contable para empresas y familias en Barcelona y Madrid desde 1990.">
  <meta name="robots" content="index, follow">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta property="og:title" content="Asesoría fiscal en Barcelona">
  <meta property="og:description" content="Asesoría fiscal y legal para empresas.">
  <meta property="og:image" content="https://www.example.es/og.png">
  <meta name="twitter:card" content="summary_large_image">
  <link rel="canonical" href="https://www.example.es/">
  <link rel="icon" href="/favicon.ico">
  <link rel="alternate" hreflang="es" href="https://www.example.es/">
  <link rel="alternate" hreflang="ca" href="https://www.example.es/ca/">
  <link rel="alternate" hreflang="x-default" href="https://www.example.es/">
  <script async src="https://www.googletagmanager.com/gtag/js?id=G-ABC123"></script>
  <script>(function(w,d,s,l,i){})(window,document,'script','dataLayer','GTM-XYZ');</script>
  <script src="https://www.googletagmanager.com/gtm.js?id=GTM-XYZ"></script>
  <script src="https://snap.licdn.com/li.lms-analytics/insight.min.js"></script>
  <script id="Cookiebot" src="https://consent.cookiebot.com/uc.js"></script>
</head>
<body>
  <noscript><iframe src="https://www.googletagmanager.com/ns.html?id=GTM-XYZ"></iframe></noscript>
  <header>
    <nav>
      <a href="/servicios">Servicios</a>
      <a href="/equipo">Equipo</a>
      <a href="/blog">Blog</a>
      <a href="/contacto">Contacto</a>
    </nav>
  </header>
  <main>
    <h1>Asesoría fiscal</h1>
    <h2>Servicios para empresas</h2>
    <p>` + strings.Repeat(spanishSentence, 25) + `</p>
    <img src="/equipo.jpg" alt="Equipo del despacho">
    <form action="/contacto" method="post">
      <label for="email">Correo</label>
      <input id="email" type="email" name="email">
      <textarea name="mensaje" aria-label="Mensaje"></textarea>
      <input type="hidden" name="token" value="x">
      <button type="submit">Enviar</button>
    </form>
  </main>
  <footer>
    <a href="/privacidad">Política de privacidad</a>
    <a href="/aviso-legal">Aviso legal</a>
    <a href="/cookies">Política de cookies</a>
    <a href="https://www.linkedin.com/company/example">LinkedIn</a>
    <a href="https://twitter.com/example">Twitter</a>
    <a href="mailto:info@example.es">info@example.es</a>
    <p>© 2024 Example Asesores SL · NIF B12345678</p>
  </footer>
</body>
</html>`
	return &models.ScrapedData{
		URL:        "https://www.example.es/",
		StatusCode: 200,
		HTML:       html,
		RobotsTxt:  strPtr("User-agent: *\nDisallow: /admin\nSitemap: https://www.example.es/sitemap.xml\n"),
		SitemapXML: strPtr(`<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"><url><loc>https://www.example.es/</loc></url></urlset>`),
	}
}

func statuses(cats []models.AuditCategory) map[string]models.ItemStatus {
	out := make(map[string]models.ItemStatus)
	for _, c := range cats {
		for _, it := range c.Items {
			out[it.ID] = it.Status
		}
	}
	return out
}

func TestEveryDefaultItemHasRule(t *testing.T) {
	for _, c := range checklist.CreateDefault() {
		for _, it := range c.Items {
			assert.True(t, HasRule(it.ID), "item %s has no rule", it.ID)
		}
	}
	assert.Len(t, Rules(), len(rules))
}

func TestAnalyze_GoodPageAllCorrect(t *testing.T) {
	got := statuses(Analyze(goodPage(), checklist.CreateDefault()))
	for id, status := range got {
		assert.Equal(t, models.StatusCorrect, status, "item %s", id)
	}
}

func TestAnalyze_BarePage(t *testing.T) {
	raw := &models.ScrapedData{URL: "http://example.com/", HTML: "<html><body><p>Hola</p></body></html>"}
	got := statuses(Analyze(raw, checklist.CreateDefault()))

	correct := map[string]bool{"indexable": true, "image_alt_text": true, "form_labels": true, "link_text": true}
	for id, status := range got {
		if correct[id] {
			assert.Equal(t, models.StatusCorrect, status, "item %s", id)
		} else {
			assert.Equal(t, models.StatusMissing, status, "item %s", id)
		}
	}
}

func TestAnalyze_NilRawDegradesToMissing(t *testing.T) {
	for id, status := range statuses(Analyze(nil, checklist.CreateDefault())) {
		assert.Equal(t, models.StatusMissing, status, "item %s", id)
	}
}

func TestAnalyze_EmptyHTMLNeverVacuouslyCorrect(t *testing.T) {
	for _, target := range []string{"http://example.com/", "https://example.com/"} {
		t.Run(target, func(t *testing.T) {
			raw := &models.ScrapedData{URL: target}
			for id, status := range statuses(Analyze(raw, checklist.CreateDefault())) {
				assert.Equal(t, models.StatusMissing, status, "item %s", id)
			}
		})
	}
}

func TestIndexableAndHTTPS_RequireContent(t *testing.T) {
	empty := NewPage(&models.ScrapedData{URL: "https://example.com/", HTML: "  \n"})
	assert.Equal(t, models.StatusMissing, indexable(empty))
	assert.Equal(t, models.StatusMissing, httpsRule(empty))

	page := NewPage(&models.ScrapedData{URL: "https://example.com/", HTML: "<html><body><p>Hola</p></body></html>"})
	assert.Equal(t, models.StatusCorrect, indexable(page))
	assert.Equal(t, models.StatusCorrect, httpsRule(page))
}

func TestAnalyze_UnruledItemsStayPendingAndNotesKept(t *testing.T) {
	cats := []models.AuditCategory{{
		ID: "custom", Weight: 1,
		Items: []models.ChecklistItem{
			{ID: "brand_voice", Status: models.StatusPending, Weight: 1, Impact: 3, Effort: models.EffortLow},
			{ID: "title_tag", Status: models.StatusPending, Note: "reviewed", Weight: 1, Impact: 3, Effort: models.EffortLow},
		},
	}}
	out := Analyze(goodPage(), cats)

	assert.Equal(t, models.StatusPending, out[0].Items[0].Status)
	assert.Equal(t, models.StatusCorrect, out[0].Items[1].Status)
	assert.Equal(t, "reviewed", out[0].Items[1].Note)
	// input untouched
	assert.Equal(t, models.StatusPending, cats[0].Items[1].Status)
}

func TestAnalyze_Idempotent(t *testing.T) {
	raw := goodPage()
	raw.HTML = strings.Replace(raw.HTML, `<meta name="robots" content="index, follow">`, `<meta name="robots" content="noindex">`, 1)
	first := Analyze(raw, checklist.CreateDefault())
	second := Analyze(raw, checklist.CreateDefault())
	require.True(t, reflect.DeepEqual(first, second))
	assert.Equal(t, models.StatusMissing, statuses(first)["indexable"])
	assert.Equal(t, first, Analyze(raw, first))
}

func TestLengthBand(t *testing.T) {
	assert.Equal(t, models.StatusMissing, lengthBand("   ", 3, 5))
	assert.Equal(t, models.StatusImprovable, lengthBand("ab", 3, 5))
	assert.Equal(t, models.StatusCorrect, lengthBand("abc", 3, 5))
	assert.Equal(t, models.StatusCorrect, lengthBand("ñáéíó", 3, 5))
	assert.Equal(t, models.StatusImprovable, lengthBand("abcdef", 3, 5))
}

func TestRobotsBlocksAll(t *testing.T) {
	tests := []struct {
		name   string
		robots string
		want   bool
	}{
		{"wildcard disallow root", "User-agent: *\nDisallow: /", true},
		{"shared group", "User-agent: bot\nUser-agent: *\nDisallow: /", true},
		{"only bot blocked", "User-agent: badbot\nDisallow: /\n\nUser-agent: *\nDisallow:", false},
		{"path only", "User-agent: *\nDisallow: /private", false},
		{"commented out", "User-agent: *\n# Disallow: /", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, robotsBlocksAll(tt.robots))
		})
	}
}

func TestRuleVariants(t *testing.T) {
	base := goodPage()
	tests := []struct {
		name   string
		item   string
		mutate func(d *models.ScrapedData)
		want   models.ItemStatus
	}{
		{"short title", "title_tag", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, "Asesoría fiscal y legal para empresas en Barcelona</title>", "Inicio</title>", 1)
		}, models.StatusImprovable},
		{"relative canonical", "canonical_url", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `rel="canonical" href="https://www.example.es/"`, `rel="canonical" href="/"`, 1)
		}, models.StatusImprovable},
		{"robots blocks site", "robots_txt", func(d *models.ScrapedData) {
			d.RobotsTxt = strPtr("User-agent: *\nDisallow: /")
		}, models.StatusImprovable},
		{"sitemap is html", "xml_sitemap", func(d *models.ScrapedData) {
			d.SitemapXML = strPtr("<html>not found</html>")
		}, models.StatusImprovable},
		{"nofollow", "indexable", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `content="index, follow"`, `content="index, nofollow"`, 1)
		}, models.StatusImprovable},
		{"mixed content", "https", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `src="/equipo.jpg"`, `src="http://cdn.example.es/equipo.jpg"`, 1)
		}, models.StatusImprovable},
		{"plain http", "https", func(d *models.ScrapedData) { d.URL = "http://www.example.es/" }, models.StatusMissing},
		{"zoom disabled", "mobile_viewport", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `initial-scale=1"`, `initial-scale=1, user-scalable=no"`, 1)
		}, models.StatusImprovable},
		{"two h1", "heading_structure", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, "<h2>Servicios para empresas</h2>", "<h1>Otro</h1>", 1)
		}, models.StatusImprovable},
		{"image without alt", "image_alt_text", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, ` alt="Equipo del despacho"`, "", 1)
		}, models.StatusMissing},
		{"legacy analytics", "analytics_tag", func(d *models.ScrapedData) {
			d.HTML = strings.NewReplacer(
				"https://www.googletagmanager.com/gtag/js?id=G-ABC123", "https://www.google-analytics.com/analytics.js",
				"googletagmanager.com/gtm.js", "example.es/app.js",
			).Replace(d.HTML)
		}, models.StatusImprovable},
		{"gtm without noscript", "tag_manager", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, "googletagmanager.com/ns.html", "example.es/ns.html", 1)
		}, models.StatusImprovable},
		{"cookie policy without banner", "cookie_consent", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, "consent.cookiebot.com", "consent.example.es", 1)
			d.HTML = strings.Replace(d.HTML, `id="Cookiebot"`, `id="consent"`, 1)
		}, models.StatusImprovable},
		{"copyright without tax id", "company_identification", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, " · NIF B12345678", "", 1)
		}, models.StatusImprovable},
		{"twitter card only", "twitter_card", func(d *models.ScrapedData) {
			d.HTML = strings.NewReplacer(`property="og:title"`, `property="og:x"`, `property="og:image"`, `property="og:y"`).Replace(d.HTML)
		}, models.StatusImprovable},
		{"one social network", "social_profiles", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, "https://twitter.com/example", "/twitter", 1)
		}, models.StatusImprovable},
		{"invalid lang", "html_lang", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `lang="es"`, `lang="spanish!"`, 1)
		}, models.StatusImprovable},
		{"unlabelled field", "form_labels", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, ` aria-label="Mensaje"`, "", 1)
		}, models.StatusImprovable},
		{"only nav landmark", "landmarks", func(d *models.ScrapedData) {
			d.HTML = strings.NewReplacer("<main>", "<div>", "</main>", "</div>").Replace(d.HTML)
		}, models.StatusImprovable},
		{"no x-default", "hreflang", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `hreflang="x-default"`, `hreflang="en"`, 1)
		}, models.StatusImprovable},
		{"declared english", "content_language", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, `lang="es"`, `lang="en"`, 1)
		}, models.StatusImprovable},
		{"keyword only in h1", "keyword_focus", func(d *models.ScrapedData) {
			d.HTML = strings.Replace(d.HTML, "Asesoría fiscal y legal para empresas en Barcelona</title>", "Despacho de asesores en Barcelona y Madrid</title>", 1)
		}, models.StatusImprovable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := *base
			tt.mutate(&raw)
			got := statuses(Analyze(&raw, checklist.CreateDefault()))
			assert.Equal(t, tt.want, got[tt.item])
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	_, ok := DetectLanguage("hola")
	assert.False(t, ok, "short text should not be detected")

	lang, ok := DetectLanguage(strings.Repeat(spanishSentence, 3))
	require.True(t, ok)
	assert.Equal(t, "es", lang)

	english := strings.Repeat("Our tax advisers help companies and families with accounting, payroll and corporate law every single day. ", 3)
	lang, ok = DetectLanguage(english)
	require.True(t, ok)
	assert.Equal(t, "en", lang)
}
