// Package analyzer evaluates every checklist item against scraped page data.
//
// Each item id maps to one pure Rule. Rules never touch the network and never
// write notes, so Analyze is deterministic and idempotent for a given input.
package analyzer

import (
	"net/url"
	"strings"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/analytics"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/parser"
	"github.com/PuerkitoBio/goquery"
)

// Rule inspects a page and returns exactly one status.
type Rule func(p *Page) models.ItemStatus

// Page bundles scraped data with a document parsed once for all rules.
type Page struct {
	Raw   *models.ScrapedData
	Doc   *goquery.Document
	Meta  models.PageMetadata
	Links []models.Link
	Text  string   // visible body text
	Base  *url.URL // final page URL, nil when unparseable

	html string // lowercased source for tag fingerprinting
}

// NewPage parses raw.HTML. Metadata and links are derived from the HTML so
// the verdict depends only on the payload, not on which scraper produced it;
// scraper-supplied links are preferred when present.
func NewPage(raw *models.ScrapedData) *Page {
	p := &Page{Raw: raw, html: strings.ToLower(raw.HTML)}
	if u, err := url.Parse(raw.PageURL()); err == nil && u.Host != "" {
		p.Base = u
	}

	doc, err := parser.ParseHTML(raw.HTML)
	if err != nil {
		doc, _ = parser.ParseHTML("")
	}
	p.Doc = doc
	p.Meta = parser.ExtractMetadata(doc)
	p.Text = parser.VisibleText(doc)
	if len(raw.Links) > 0 {
		p.Links = raw.Links
	} else {
		p.Links = parser.ExtractLinks(doc, p.Base)
	}
	return p
}

// HasContent reports whether any HTML was scraped. Rules that would pass
// vacuously (no images, no forms) use it to degrade to missing instead.
func (p *Page) HasContent() bool {
	return strings.TrimSpace(p.Raw.HTML) != ""
}

// Contains reports whether the lowercased HTML contains any of the needles.
func (p *Page) Contains(needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(p.html, n) {
			return true
		}
	}
	return false
}

var rules = map[string]Rule{
	// technical SEO
	"title_tag":         titleTag,
	"meta_description":  metaDescription,
	"canonical_url":     canonicalURL,
	"robots_txt":        robotsTxt,
	"xml_sitemap":       xmlSitemap,
	"indexable":         indexable,
	"https":             httpsRule,
	"mobile_viewport":   mobileViewport,
	"heading_structure": headingStructure,
	// content
	"word_count":     wordCount,
	"image_alt_text": imageAltText,
	"internal_links": internalLinks,
	"keyword_focus":  keywordFocus,
	"contact_cta":    contactCTA,
	// analytics
	"analytics_tag":       analyticsTag,
	"tag_manager":         tagManager,
	"conversion_tracking": conversionTracking,
	// legal
	"privacy_policy":         privacyPolicy,
	"cookie_consent":         cookieConsent,
	"legal_notice":           legalNotice,
	"company_identification": companyIdentification,
	// social
	"open_graph":      openGraph,
	"twitter_card":    twitterCard,
	"social_profiles": socialProfiles,
	"favicon":         favicon,
	// accessibility
	"html_lang":   htmlLang,
	"form_labels": formLabels,
	"link_text":   linkText,
	"landmarks":   landmarks,
	// international
	"hreflang":         hreflang,
	"content_language": contentLanguage,
}

// Rules returns a copy of the rule registry keyed by item id.
func Rules() map[string]Rule {
	out := make(map[string]Rule, len(rules))
	for k, v := range rules {
		out[k] = v
	}
	return out
}

// HasRule reports whether an item id is evaluated automatically.
func HasRule(itemID string) bool {
	_, ok := rules[itemID]
	return ok
}

// Analyze returns a copy of categories with every ruled item evaluated.
// Items without a rule keep their status and notes are never touched.
// A nil raw payload degrades every ruled item to missing.
func Analyze(raw *models.ScrapedData, categories []models.AuditCategory) []models.AuditCategory {
	out := checklist.Clone(categories)

	var page *Page
	if raw != nil {
		page = NewPage(raw)
	}

	for ci := range out {
		for ii := range out[ci].Items {
			item := &out[ci].Items[ii]
			rule, ok := rules[item.ID]
			if !ok {
				continue
			}
			if page == nil {
				item.Status = models.StatusMissing
				continue
			}
			item.Status = rule(page)
		}
	}
	return out
}

// Keywords returns the n most frequent content words of the page's visible
// text as "word:count" strings. A nil payload yields nil.
func Keywords(raw *models.ScrapedData, n int) []string {
	if raw == nil {
		return nil
	}
	a := &analytics.Analytics{}
	return analytics.TopKeywords(a.WordFrequency(NewPage(raw).Text), n)
}
