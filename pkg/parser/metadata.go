package parser

import (
	"net/url"
	"strings"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

// ExtractMetadata reads head tags and body counters from a parsed page.
func ExtractMetadata(doc *goquery.Document) models.PageMetadata {
	meta := models.PageMetadata{
		OpenGraph: map[string]string{},
		Twitter:   map[string]string{},
	}

	meta.Title = normalizeText(doc.Find("head title").First().Text())
	if meta.Title == "" {
		meta.Title = normalizeText(doc.Find("title").First().Text())
	}
	meta.Lang = strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		if cs, ok := s.Attr("charset"); ok && meta.Charset == "" {
			meta.Charset = strings.TrimSpace(cs)
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		name := strings.ToLower(strings.TrimSpace(s.AttrOr("name", "")))
		property := strings.ToLower(strings.TrimSpace(s.AttrOr("property", "")))

		switch name {
		case "description":
			meta.Description = content
		case "robots":
			meta.Robots = strings.ToLower(content)
		case "viewport":
			meta.Viewport = content
		case "generator":
			meta.Generator = content
		}
		// twitter tags are often published with property instead of name
		for _, key := range []string{name, property} {
			switch {
			case strings.HasPrefix(key, "og:") && content != "":
				meta.OpenGraph[strings.TrimPrefix(key, "og:")] = content
			case strings.HasPrefix(key, "twitter:") && content != "":
				meta.Twitter[strings.TrimPrefix(key, "twitter:")] = content
			}
		}
	})

	doc.Find("link[rel]").Each(func(i int, s *goquery.Selection) {
		rels := strings.Fields(strings.ToLower(s.AttrOr("rel", "")))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		for _, rel := range rels {
			switch rel {
			case "canonical":
				if meta.Canonical == "" {
					meta.Canonical = href
				}
			case "icon":
				if meta.Favicon == "" {
					meta.Favicon = href
				}
			case "alternate":
				if lang, ok := s.Attr("hreflang"); ok {
					meta.Hreflang = append(meta.Hreflang, models.Alternate{Lang: strings.TrimSpace(lang), Href: href})
				}
			}
		}
	})

	meta.H1Count = doc.Find("h1").Length()
	meta.H2Count = doc.Find("h2").Length()
	imgs := doc.Find("img")
	meta.ImageCount = imgs.Length()
	imgs.Each(func(i int, s *goquery.Selection) {
		// alt="" is a valid decorative marker, so presence counts
		if _, ok := s.Attr("alt"); ok {
			meta.ImagesWithAlt++
		}
	})
	meta.JSONLDCount = doc.Find(`script[type="application/ld+json"]`).Length()
	meta.WordCount = len(strings.Fields(VisibleText(doc)))

	return meta
}

// ExtractLinks returns every anchor with an href, resolved against base and
// classified as internal when it shares the registrable domain of base.
func ExtractLinks(doc *goquery.Document, base *url.URL) []models.Link {
	var links []models.Link
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}
		link := models.Link{
			Href: href,
			Text: anchorText(s),
			Rel:  strings.ToLower(s.AttrOr("rel", "")),
		}
		if u, err := url.Parse(href); err == nil {
			if base != nil {
				u = base.ResolveReference(u)
			}
			if u.Scheme == "http" || u.Scheme == "https" {
				link.Href = u.String()
				link.Internal = SameSite(base, u)
			}
		}
		links = append(links, link)
	})
	return links
}

func anchorText(s *goquery.Selection) string {
	if text := normalizeText(s.Text()); text != "" {
		return text
	}
	for _, attr := range []string{"aria-label", "title"} {
		if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return strings.TrimSpace(s.Find("img[alt]").First().AttrOr("alt", ""))
}

// SameSite reports whether two URLs belong to the same registrable domain
// (eTLD+1). Hosts without a public suffix, such as IPs or localhost, must match exactly.
func SameSite(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	ha, hb := strings.ToLower(a.Hostname()), strings.ToLower(b.Hostname())
	if ha == hb {
		return true
	}
	da, errA := publicsuffix.EffectiveTLDPlusOne(ha)
	db, errB := publicsuffix.EffectiveTLDPlusOne(hb)
	if errA != nil || errB != nil {
		return false
	}
	return da == db
}
