package models

// PageMetadata holds the head and body signals extracted from a scraped page.
type PageMetadata struct {
	// Head
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Robots      string `json:"robots,omitempty" yaml:"robots,omitempty"`       // meta robots content
	Canonical   string `json:"canonical,omitempty" yaml:"canonical,omitempty"` // as written in the page
	Viewport    string `json:"viewport,omitempty" yaml:"viewport,omitempty"`
	Charset     string `json:"charset,omitempty" yaml:"charset,omitempty"`
	Lang        string `json:"lang,omitempty" yaml:"lang,omitempty"` // <html lang>
	Generator   string `json:"generator,omitempty" yaml:"generator,omitempty"`
	Favicon     string `json:"favicon,omitempty" yaml:"favicon,omitempty"`

	// Social
	OpenGraph map[string]string `json:"open_graph,omitempty" yaml:"open_graph,omitempty"` // og:* without prefix
	Twitter   map[string]string `json:"twitter,omitempty" yaml:"twitter,omitempty"`       // twitter:* without prefix

	// International
	Hreflang []Alternate `json:"hreflang,omitempty" yaml:"hreflang,omitempty"`

	// Body
	H1Count       int `json:"h1_count" yaml:"h1_count"`
	H2Count       int `json:"h2_count" yaml:"h2_count"`
	ImageCount    int `json:"image_count" yaml:"image_count"`
	ImagesWithAlt int `json:"images_with_alt" yaml:"images_with_alt"`
	WordCount     int `json:"word_count" yaml:"word_count"`
	JSONLDCount   int `json:"jsonld_count,omitempty" yaml:"jsonld_count,omitempty"`

	// Readability enrichment (from go-readability)
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
}

// Alternate is a <link rel="alternate" hreflang> entry.
type Alternate struct {
	Lang string `json:"lang" yaml:"lang"`
	Href string `json:"href" yaml:"href"`
}
