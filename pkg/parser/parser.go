// Package parser extracts audit signals from HTML: head metadata, links,
// visible text and a markdown rendition of the main content.
package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

type Parser struct{}

// Article is the readability enrichment of a page.
type Article struct {
	Title    string
	Byline   string
	Excerpt  string
	SiteName string
	Markdown string
}

// ParseArticle uses go-readability to find the main content and renders it as
// markdown by walking the distilled HTML with goquery.
func (p *Parser) ParseArticle(rawURL, html string) (*Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("readability failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, err
	}

	return &Article{
		Title:    normalizeText(article.Title),
		Byline:   normalizeText(article.Byline),
		Excerpt:  normalizeText(article.Excerpt),
		SiteName: normalizeText(article.SiteName),
		Markdown: toMarkdown(doc.Selection),
	}, nil
}

// toMarkdown renders content-bearing tags as markdown blocks.
func toMarkdown(root *goquery.Selection) string {
	var blocks []string
	root.Find("h1,h2,h3,h4,p,li,table,pre").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		switch tag {
		case "table":
			if table := extractTable(s); table != "" {
				blocks = append(blocks, table)
			}
		case "pre":
			if code := extractCodeBlock(s); code != "" {
				blocks = append(blocks, code)
			}
		default:
			text := normalizeText(s.Text())
			if text == "" {
				return
			}
			switch tag {
			case "h1":
				text = "# " + text
			case "h2":
				text = "## " + text
			case "h3":
				text = "### " + text
			case "h4":
				text = "#### " + text
			case "li":
				text = "- " + text
			}
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, "\n\n")
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func extractTable(s *goquery.Selection) string {
	var headers []string
	var rows [][]string

	s.Find("thead tr th").Each(func(i int, th *goquery.Selection) {
		headers = append(headers, normalizeText(th.Text()))
	})
	// Fallback: first row
	if len(headers) == 0 {
		s.Find("tr").First().Find("th,td").Each(func(i int, cell *goquery.Selection) {
			headers = append(headers, normalizeText(cell.Text()))
		})
	}

	s.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			row = append(row, normalizeText(td.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	if len(headers) == 0 && len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)))
	for _, row := range rows {
		b.WriteString("\n| " + strings.Join(row, " | ") + " |")
	}
	return b.String()
}

func extractCodeBlock(s *goquery.Selection) string {
	codeSel := s.Find("code")
	if codeSel.Length() == 0 {
		return ""
	}
	code := strings.TrimSpace(codeSel.Text())
	if code == "" {
		return ""
	}
	lang, _ := codeSel.Attr("class")
	lang = strings.TrimPrefix(lang, "language-")
	return "```" + lang + "\n" + code + "\n```"
}

// VisibleText returns the normalized body text without scripts, styles and templates.
func VisibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script,style,noscript,template,svg").Remove()
	return normalizeText(body.Text())
}

// ParseHTML builds a goquery document from raw HTML.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Enrich copies readability fields into metadata without overwriting head values.
func (a *Article) Enrich(meta *models.PageMetadata) {
	if a == nil {
		return
	}
	meta.Author = a.Byline
	meta.Excerpt = a.Excerpt
	meta.SiteName = a.SiteName
	if meta.Title == "" {
		meta.Title = a.Title
	}
}
