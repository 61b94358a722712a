package analyzer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
)

// Tag fingerprints, matched against the lowercased HTML.
var (
	modernAnalytics = []string{"googletagmanager.com/gtag/js?id=g-", "plausible.io/js", "matomo.js", "piwik.js", "cdn.usefathom.com", "static.cloudflareinsights.com"}
	legacyAnalytics = []string{"google-analytics.com/analytics.js", "google-analytics.com/ga.js", "googletagmanager.com/gtag/js?id=ua-"}
	gtmScript       = []string{"googletagmanager.com/gtm.js"}
	gtmNoscript     = []string{"googletagmanager.com/ns.html"}
	conversionTags  = []string{"connect.facebook.net", "fbq(", "snap.licdn.com", "_linkedin_partner_id", "googleadservices.com", "googleads.g.doubleclick.net"}
	consentPlatform = []string{"cookiebot", "onetrust", "cookielaw.org", "cookieyes", "iubenda", "complianz", "cookie-script.com", "didomi", "usercentrics", "quantcast.mgr"}

	adsConversionID = regexp.MustCompile(`['"]aw-\d+`)
	// Spanish company tax id (CIF/NIF), optionally prefixed with the ES VAT code.
	taxIDPattern = regexp.MustCompile(`\b(?:ES)?[ABCDEFGHJNPQRSUVW]-?\d{7}[0-9A-J]\b`)
)

var (
	privacyWords     = []string{"privacy", "privacidad", "privacitat", "datenschutz", "confidentialit", "protección de datos", "protecció de dades"}
	cookieWords      = []string{"cookie"}
	legalNoticeWords = []string{"aviso-legal", "aviso legal", "avis-legal", "avís legal", "avis legal", "legal-notice", "legal notice", "imprint", "impressum", "terms", "términos", "terminos", "condiciones", "condicions", "mentions légales"}
	genericLinkText  = map[string]struct{}{
		"click here": {}, "here": {}, "read more": {}, "more": {}, "learn more": {}, "link": {},
		"aquí": {}, "clic aquí": {}, "haz clic aquí": {}, "pincha aquí": {}, "leer más": {}, "más": {}, "ver más": {}, "saber más": {}, "más información": {},
		"aquí mateix": {}, "cliqueu aquí": {}, "llegir més": {}, "més": {}, "més informació": {},
	}
	socialHosts = []string{"linkedin.com", "twitter.com", "x.com", "facebook.com", "instagram.com", "youtube.com", "tiktok.com"}
)

func analyticsTag(p *Page) models.ItemStatus {
	switch {
	case p.Contains(modernAnalytics...):
		return models.StatusCorrect
	case p.Contains(gtmScript...):
		// analytics is usually deployed through the container
		return models.StatusCorrect
	case p.Contains(legacyAnalytics...):
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func tagManager(p *Page) models.ItemStatus {
	script, noscript := p.Contains(gtmScript...), p.Contains(gtmNoscript...)
	switch {
	case script && noscript:
		return models.StatusCorrect
	case script || noscript:
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func conversionTracking(p *Page) models.ItemStatus {
	if p.Contains(conversionTags...) || adsConversionID.MatchString(p.html) {
		return models.StatusCorrect
	}
	return models.StatusMissing
}

// linkMatches reports whether any link href or text contains one of the words.
func (p *Page) linkMatches(words []string) bool {
	for _, l := range p.Links {
		if matchesAny(strings.ToLower(l.Href+" "+l.Text), words) {
			return true
		}
	}
	return false
}

func privacyPolicy(p *Page) models.ItemStatus {
	if p.linkMatches(privacyWords) {
		return models.StatusCorrect
	}
	return models.StatusMissing
}

func cookieConsent(p *Page) models.ItemStatus {
	switch {
	case p.Contains(consentPlatform...):
		return models.StatusCorrect
	case p.linkMatches(cookieWords):
		// a cookie policy without a consent mechanism
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func legalNotice(p *Page) models.ItemStatus {
	if p.linkMatches(legalNoticeWords) {
		return models.StatusCorrect
	}
	return models.StatusMissing
}

func companyIdentification(p *Page) models.ItemStatus {
	switch {
	case taxIDPattern.MatchString(p.Text):
		return models.StatusCorrect
	case strings.Contains(p.Text, "©") || strings.Contains(strings.ToLower(p.Text), "copyright"):
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func openGraph(p *Page) models.ItemStatus {
	n := 0
	for _, key := range []string{"title", "description", "image"} {
		if p.Meta.OpenGraph[key] != "" {
			n++
		}
	}
	switch n {
	case 3:
		return models.StatusCorrect
	case 0:
		return models.StatusMissing
	}
	return models.StatusImprovable
}

func twitterCard(p *Page) models.ItemStatus {
	if p.Meta.Twitter["card"] == "" {
		return models.StatusMissing
	}
	// twitter falls back to Open Graph for title and image
	for _, v := range []string{p.Meta.Twitter["title"], p.Meta.Twitter["image"], p.Meta.OpenGraph["title"], p.Meta.OpenGraph["image"]} {
		if v != "" {
			return models.StatusCorrect
		}
	}
	return models.StatusImprovable
}

func socialProfiles(p *Page) models.ItemStatus {
	networks := make(map[string]struct{})
	for _, l := range p.Links {
		u, err := url.Parse(l.Href)
		if err != nil {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		for _, social := range socialHosts {
			if host == social || strings.HasSuffix(host, "."+social) {
				networks[social] = struct{}{}
			}
		}
	}
	switch n := len(networks); {
	case n >= SocialProfilesCorrect:
		return models.StatusCorrect
	case n == 1:
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func favicon(p *Page) models.ItemStatus {
	switch {
	case p.Meta.Favicon != "":
		return models.StatusCorrect
	case p.Doc.Find(`link[rel~="apple-touch-icon"]`).Length() > 0:
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func htmlLang(p *Page) models.ItemStatus {
	if p.Meta.Lang == "" {
		return models.StatusMissing
	}
	if _, err := language.Parse(p.Meta.Lang); err != nil {
		return models.StatusImprovable
	}
	return models.StatusCorrect
}

func formLabels(p *Page) models.ItemStatus {
	if !p.HasContent() {
		return models.StatusMissing
	}
	labelled := make(map[string]struct{})
	p.Doc.Find("label[for]").Each(func(i int, s *goquery.Selection) {
		labelled[s.AttrOr("for", "")] = struct{}{}
	})

	total, covered := 0, 0
	p.Doc.Find("input,select,textarea").Each(func(i int, s *goquery.Selection) {
		if goquery.NodeName(s) == "input" {
			switch strings.ToLower(s.AttrOr("type", "text")) {
			case "hidden", "submit", "button", "image", "reset":
				return
			}
		}
		total++
		_, byFor := labelled[s.AttrOr("id", "\x00")]
		if byFor || s.AttrOr("aria-label", "") != "" || s.AttrOr("aria-labelledby", "") != "" ||
			s.AttrOr("title", "") != "" || s.Closest("label").Length() > 0 {
			covered++
		}
	})
	return coverage(covered, total)
}

func linkText(p *Page) models.ItemStatus {
	if !p.HasContent() {
		return models.StatusMissing
	}
	if len(p.Links) == 0 {
		return models.StatusCorrect
	}
	bad := 0
	for _, l := range p.Links {
		text := strings.ToLower(strings.TrimSpace(l.Text))
		if _, generic := genericLinkText[text]; generic || text == "" {
			bad++
		}
	}
	ratio := float64(bad) / float64(len(p.Links))
	switch {
	case bad == 0:
		return models.StatusCorrect
	case ratio <= GenericLinkTolerance:
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func landmarks(p *Page) models.ItemStatus {
	has := func(sel string) bool { return p.Doc.Find(sel).Length() > 0 }
	hasMain, hasNav := has(`main,[role="main"]`), has(`nav,[role="navigation"]`)
	switch {
	case hasMain && hasNav:
		return models.StatusCorrect
	case hasMain || hasNav || has(`header,footer,[role="banner"],[role="contentinfo"]`):
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func hreflang(p *Page) models.ItemStatus {
	alts := p.Meta.Hreflang
	if len(alts) == 0 {
		return models.StatusMissing
	}
	hasDefault := false
	for _, a := range alts {
		if strings.EqualFold(a.Lang, "x-default") {
			hasDefault = true
		}
	}
	if hasDefault && len(alts) >= 2 {
		return models.StatusCorrect
	}
	return models.StatusImprovable
}

func contentLanguage(p *Page) models.ItemStatus {
	if p.Meta.Lang == "" {
		return models.StatusMissing
	}
	tag, err := language.Parse(p.Meta.Lang)
	if err != nil {
		return models.StatusImprovable
	}
	detected, ok := DetectLanguage(p.Text)
	if !ok {
		return models.StatusImprovable
	}
	base, _ := tag.Base()
	if base.String() == detected {
		return models.StatusCorrect
	}
	return models.StatusImprovable
}
