package checklist

import "github.com/GlobalTax/nrro-es-starter-sub005/models"

// Category ids of the built-in catalog.
const (
	CategoryTechnicalSEO  = "technical_seo"
	CategoryContent       = "content"
	CategoryAnalytics     = "analytics"
	CategoryLegal         = "legal_compliance"
	CategorySocial        = "social"
	CategoryAccessibility = "accessibility"
	CategoryInternational = "international"
)

func item(id, label, description, recommendation string, weight float64, impact int, effort models.Effort) models.ChecklistItem {
	return models.ChecklistItem{
		ID:             id,
		Label:          label,
		Description:    description,
		Recommendation: recommendation,
		Status:         models.StatusPending,
		Weight:         weight,
		Impact:         impact,
		Effort:         effort,
	}
}

// defaultTemplate is the canonical catalog. Never hand it out directly; use CreateDefault.
var defaultTemplate = []models.AuditCategory{
	{
		ID: CategoryTechnicalSEO, Name: "Technical SEO", Weight: 25,
		Items: []models.ChecklistItem{
			item("title_tag", "Title tag",
				"The page has a <title> between 30 and 60 characters.",
				"Write a unique title of 30-60 characters that leads with the main service.",
				15, 9, models.EffortLow),
			item("meta_description", "Meta description",
				"The page has a meta description between 70 and 160 characters.",
				"Add a meta description of 70-160 characters summarising the page and its call to action.",
				15, 8, models.EffortLow),
			item("canonical_url", "Canonical URL",
				"A rel=canonical link with an absolute URL is declared.",
				"Declare an absolute rel=canonical URL to consolidate duplicate URLs.",
				10, 6, models.EffortLow),
			item("robots_txt", "robots.txt",
				"The site serves a robots.txt that does not block the whole site.",
				"Publish a robots.txt at the site root and avoid a blanket Disallow: /.",
				10, 6, models.EffortLow),
			item("xml_sitemap", "XML sitemap",
				"An XML sitemap is reachable from robots.txt or /sitemap.xml.",
				"Generate an XML sitemap and reference it from robots.txt.",
				10, 7, models.EffortMedium),
			item("indexable", "Indexable page",
				"Meta robots does not prevent indexing or link following.",
				"Remove noindex/nofollow from pages that should rank.",
				10, 9, models.EffortLow),
			item("https", "HTTPS",
				"The page is served over HTTPS without mixed content.",
				"Serve every page and asset over HTTPS and redirect HTTP traffic.",
				10, 8, models.EffortMedium),
			item("mobile_viewport", "Mobile viewport",
				"A responsive viewport meta tag is declared.",
				`Add <meta name="viewport" content="width=device-width, initial-scale=1">.`,
				10, 8, models.EffortLow),
			item("heading_structure", "Heading structure",
				"Exactly one H1 followed by H2 sections.",
				"Use a single H1 for the page topic and H2 headings for each section.",
				10, 6, models.EffortLow),
		},
	},
	{
		ID: CategoryContent, Name: "Content", Weight: 20,
		Items: []models.ChecklistItem{
			item("word_count", "Content depth",
				"The main content has at least 300 words.",
				"Expand the page copy to at least 300 words of useful, service-specific content.",
				30, 7, models.EffortHigh),
			item("image_alt_text", "Image alt text",
				"Every image carries descriptive alt text.",
				"Describe each meaningful image with alt text; use empty alt only for decoration.",
				20, 5, models.EffortMedium),
			item("internal_links", "Internal linking",
				"The page links to at least five internal pages.",
				"Link to related services, articles and the contact page.",
				20, 5, models.EffortMedium),
			item("keyword_focus", "Keyword focus",
				"The dominant body keyword appears in the title.",
				"Align the title and H1 with the term the page copy is actually about.",
				15, 4, models.EffortMedium),
			item("contact_cta", "Contact call to action",
				"A form, phone or email link lets visitors get in touch.",
				"Add a visible contact form or click-to-call/mailto link.",
				15, 6, models.EffortLow),
		},
	},
	{
		ID: CategoryAnalytics, Name: "Analytics & Tracking", Weight: 15,
		Items: []models.ChecklistItem{
			item("analytics_tag", "Analytics tag",
				"A current web analytics tag is installed.",
				"Install Google Analytics 4 (gtag.js) or an equivalent analytics tool.",
				40, 9, models.EffortLow),
			item("tag_manager", "Tag manager",
				"Google Tag Manager is installed with its noscript fallback.",
				"Deploy tags through Google Tag Manager, including the <noscript> iframe.",
				30, 5, models.EffortMedium),
			item("conversion_tracking", "Conversion tracking",
				"An advertising or conversion pixel is present.",
				"Add conversion tracking (Google Ads, LinkedIn Insight or Meta Pixel) for lead forms.",
				30, 6, models.EffortMedium),
		},
	},
	{
		ID: CategoryLegal, Name: "Legal & Compliance", Weight: 15,
		Items: []models.ChecklistItem{
			item("privacy_policy", "Privacy policy",
				"A privacy policy is linked from the page.",
				"Link the privacy policy from the footer of every page.",
				30, 8, models.EffortLow),
			item("cookie_consent", "Cookie consent",
				"A consent management platform gates non-essential cookies.",
				"Install a consent banner (e.g. Cookiebot, OneTrust) that blocks tags until consent.",
				30, 8, models.EffortMedium),
			item("legal_notice", "Legal notice",
				"A legal notice or terms page is linked.",
				"Publish a legal notice with the company identification and link it from the footer.",
				20, 6, models.EffortLow),
			item("company_identification", "Company identification",
				"The page shows the company tax id alongside the copyright notice.",
				"Show the registered company name and tax id (NIF/CIF) in the footer.",
				20, 4, models.EffortLow),
		},
	},
	{
		ID: CategorySocial, Name: "Social & Brand", Weight: 10,
		Items: []models.ChecklistItem{
			item("open_graph", "Open Graph tags",
				"og:title, og:description and og:image are declared.",
				"Declare og:title, og:description and og:image for rich link previews.",
				35, 6, models.EffortLow),
			item("twitter_card", "Twitter card",
				"A twitter:card is declared with title or image.",
				`Add <meta name="twitter:card" content="summary_large_image"> with title and image.`,
				20, 3, models.EffortLow),
			item("social_profiles", "Social profiles",
				"The page links to at least two social profiles.",
				"Link the firm's LinkedIn and other active social profiles.",
				25, 4, models.EffortLow),
			item("favicon", "Favicon",
				"A favicon is declared.",
				`Declare a favicon with <link rel="icon">.`,
				20, 3, models.EffortLow),
		},
	},
	{
		ID: CategoryAccessibility, Name: "Accessibility", Weight: 10,
		Items: []models.ChecklistItem{
			item("html_lang", "Document language",
				"The <html> element declares a valid BCP 47 language.",
				`Set <html lang="..."> to the page language, e.g. "es" or "ca".`,
				25, 6, models.EffortLow),
			item("form_labels", "Form labels",
				"Every form control has an accessible label.",
				"Associate a <label> or aria-label with every form field.",
				25, 5, models.EffortMedium),
			item("link_text", "Descriptive link text",
				"Links have descriptive text instead of 'click here'.",
				"Replace generic or empty link text with a description of the destination.",
				25, 4, models.EffortLow),
			item("landmarks", "Landmark regions",
				"The page declares <main> and <nav> landmarks.",
				"Wrap the primary content in <main> and navigation in <nav>.",
				25, 4, models.EffortMedium),
		},
	},
	{
		ID: CategoryInternational, Name: "International", Weight: 5,
		Items: []models.ChecklistItem{
			item("hreflang", "Hreflang alternates",
				"Language alternates are declared, including x-default.",
				"Declare hreflang alternates for every language version plus x-default.",
				50, 5, models.EffortHigh),
			item("content_language", "Content language match",
				"The declared language matches the language of the copy.",
				"Make the lang attribute match the language the page is written in.",
				50, 4, models.EffortMedium),
		},
	},
}
