package models

import "time"

// ScrapedData is the payload returned by a scraper for one URL.
// It is retained on the session for export and never mutated after the scrape.
type ScrapedData struct {
	URL        string       `json:"url" yaml:"url"`
	FinalURL   string       `json:"final_url,omitempty" yaml:"final_url,omitempty"` // after redirects
	StatusCode int          `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	HTML       string       `json:"html" yaml:"html"`
	Markdown   string       `json:"markdown,omitempty" yaml:"markdown,omitempty"`
	Links      []Link       `json:"links,omitempty" yaml:"links,omitempty"`
	Metadata   PageMetadata `json:"metadata" yaml:"metadata"`
	RobotsTxt  *string      `json:"robots_txt,omitempty" yaml:"robots_txt,omitempty"`   // nil when unavailable
	SitemapXML *string      `json:"sitemap_xml,omitempty" yaml:"sitemap_xml,omitempty"` // nil when unavailable
	FetchedAt  time.Time    `json:"fetched_at" yaml:"fetched_at"`
}

// Link is an anchor found on the page.
type Link struct {
	Href     string `json:"href" yaml:"href"` // resolved against the page URL
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Rel      string `json:"rel,omitempty" yaml:"rel,omitempty"`
	Internal bool   `json:"internal" yaml:"internal"`
}

// PageURL returns the final URL when known, else the requested one.
func (d *ScrapedData) PageURL() string {
	if d.FinalURL != "" {
		return d.FinalURL
	}
	return d.URL
}

// Clone returns a deep copy of d. A nil receiver yields nil.
func (d *ScrapedData) Clone() *ScrapedData {
	if d == nil {
		return nil
	}
	out := *d
	out.Links = append([]Link(nil), d.Links...)
	out.Metadata.OpenGraph = cloneMap(d.Metadata.OpenGraph)
	out.Metadata.Twitter = cloneMap(d.Metadata.Twitter)
	out.Metadata.Hreflang = append([]Alternate(nil), d.Metadata.Hreflang...)
	if d.RobotsTxt != nil {
		robots := *d.RobotsTxt
		out.RobotsTxt = &robots
	}
	if d.SitemapXML != nil {
		sitemap := *d.SitemapXML
		out.SitemapXML = &sitemap
	}
	return &out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
