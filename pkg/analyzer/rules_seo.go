package analyzer

import (
	"bufio"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/analytics"
	"github.com/PuerkitoBio/goquery"
)

// lengthBand grades text that should be between lo and hi characters.
func lengthBand(s string, lo, hi int) models.ItemStatus {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	switch {
	case n == 0:
		return models.StatusMissing
	case n >= lo && n <= hi:
		return models.StatusCorrect
	default:
		return models.StatusImprovable
	}
}

func titleTag(p *Page) models.ItemStatus {
	return lengthBand(p.Meta.Title, TitleMinChars, TitleMaxChars)
}

func metaDescription(p *Page) models.ItemStatus {
	return lengthBand(p.Meta.Description, DescriptionMinChars, DescriptionMaxChars)
}

func canonicalURL(p *Page) models.ItemStatus {
	if p.Meta.Canonical == "" {
		return models.StatusMissing
	}
	u, err := url.Parse(p.Meta.Canonical)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return models.StatusImprovable
	}
	return models.StatusCorrect
}

func robotsTxt(p *Page) models.ItemStatus {
	if p.Raw.RobotsTxt == nil || strings.TrimSpace(*p.Raw.RobotsTxt) == "" {
		return models.StatusMissing
	}
	if robotsBlocksAll(*p.Raw.RobotsTxt) {
		return models.StatusImprovable
	}
	return models.StatusCorrect
}

// robotsBlocksAll reports a "Disallow: /" inside a "User-agent: *" group.
func robotsBlocksAll(robots string) bool {
	inWildcard := false
	lastWasAgent := false
	scanner := bufio.NewScanner(strings.NewReader(robots))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			// consecutive user-agent lines share one group
			if !lastWasAgent {
				inWildcard = false
			}
			if value == "*" {
				inWildcard = true
			}
			lastWasAgent = true
		case "disallow":
			if inWildcard && value == "/" {
				return true
			}
			lastWasAgent = false
		default:
			lastWasAgent = false
		}
	}
	return false
}

func xmlSitemap(p *Page) models.ItemStatus {
	if p.Raw.SitemapXML == nil || strings.TrimSpace(*p.Raw.SitemapXML) == "" {
		return models.StatusMissing
	}
	body := strings.ToLower(*p.Raw.SitemapXML)
	if strings.Contains(body, "<urlset") || strings.Contains(body, "<sitemapindex") {
		return models.StatusCorrect
	}
	return models.StatusImprovable
}

func indexable(p *Page) models.ItemStatus {
	if !p.HasContent() {
		return models.StatusMissing
	}
	directives := strings.FieldsFunc(p.Meta.Robots, func(r rune) bool { return r == ',' || r == ' ' })
	status := models.StatusCorrect
	for _, d := range directives {
		switch d {
		case "noindex", "none":
			return models.StatusMissing
		case "nofollow":
			status = models.StatusImprovable
		}
	}
	return status
}

func httpsRule(p *Page) models.ItemStatus {
	if p.Base == nil || p.Base.Scheme != "https" || !p.HasContent() {
		return models.StatusMissing
	}
	mixed := false
	p.Doc.Find("script[src],img[src],iframe[src],link[rel~=stylesheet][href],source[src],video[src],audio[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		ref := s.AttrOr("src", s.AttrOr("href", ""))
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref)), "http://") {
			mixed = true
			return false
		}
		return true
	})
	if mixed {
		return models.StatusImprovable
	}
	return models.StatusCorrect
}

func mobileViewport(p *Page) models.ItemStatus {
	vp := strings.ToLower(strings.ReplaceAll(p.Meta.Viewport, " ", ""))
	switch {
	case vp == "":
		return models.StatusMissing
	case !strings.Contains(vp, "width=device-width"):
		return models.StatusImprovable
	case strings.Contains(vp, "user-scalable=no") || strings.Contains(vp, "user-scalable=0") || strings.Contains(vp, "maximum-scale=1,") || strings.HasSuffix(vp, "maximum-scale=1"):
		// blocks zoom
		return models.StatusImprovable
	}
	return models.StatusCorrect
}

func headingStructure(p *Page) models.ItemStatus {
	switch {
	case p.Meta.H1Count == 0:
		return models.StatusMissing
	case p.Meta.H1Count == 1 && p.Meta.H2Count > 0:
		return models.StatusCorrect
	default:
		return models.StatusImprovable
	}
}

func wordCount(p *Page) models.ItemStatus {
	switch n := p.Meta.WordCount; {
	case n >= WordCountCorrect:
		return models.StatusCorrect
	case n >= WordCountImprovable:
		return models.StatusImprovable
	default:
		return models.StatusMissing
	}
}

// coverage grades a ratio; total == 0 is vacuously correct.
func coverage(covered, total int) models.ItemStatus {
	if total == 0 {
		return models.StatusCorrect
	}
	ratio := float64(covered) / float64(total)
	switch {
	case ratio >= CoverageCorrect:
		return models.StatusCorrect
	case ratio >= CoverageImprovable:
		return models.StatusImprovable
	default:
		return models.StatusMissing
	}
}

func imageAltText(p *Page) models.ItemStatus {
	if !p.HasContent() {
		return models.StatusMissing
	}
	return coverage(p.Meta.ImagesWithAlt, p.Meta.ImageCount)
}

func internalLinks(p *Page) models.ItemStatus {
	seen := make(map[string]struct{})
	self := ""
	if p.Base != nil {
		self = strings.TrimSuffix(p.Base.String(), "/")
	}
	for _, l := range p.Links {
		href := strings.TrimSuffix(l.Href, "/")
		if !l.Internal || href == self {
			continue
		}
		seen[href] = struct{}{}
	}
	switch n := len(seen); {
	case n >= InternalLinksCorrect:
		return models.StatusCorrect
	case n >= 1:
		return models.StatusImprovable
	default:
		return models.StatusMissing
	}
}

func keywordFocus(p *Page) models.ItemStatus {
	a := &analytics.Analytics{}
	top := a.TopNWords(p.Text, 1)
	if len(top) == 0 {
		return models.StatusMissing
	}
	keyword := top[0]
	if containsWord(p.Meta.Title, keyword) {
		return models.StatusCorrect
	}
	h1 := p.Doc.Find("h1").First().Text()
	if containsWord(h1, keyword) || containsWord(p.Meta.Description, keyword) {
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func containsWord(text, word string) bool {
	for _, w := range analytics.Tokenize(text) {
		if w == word {
			return true
		}
	}
	return false
}

var contactWords = []string{"contact", "contacto", "contacte", "contactar", "kontakt", "get in touch"}

func contactCTA(p *Page) models.ItemStatus {
	if p.Doc.Find("form").Length() > 0 {
		return models.StatusCorrect
	}
	improvable := false
	for _, l := range p.Links {
		href := strings.ToLower(l.Href)
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return models.StatusCorrect
		}
		if matchesAny(href+" "+strings.ToLower(l.Text), contactWords) {
			improvable = true
		}
	}
	if improvable {
		return models.StatusImprovable
	}
	return models.StatusMissing
}

func matchesAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
