// Package scraper fetches a page and the site files an audit needs
// (robots.txt, sitemap) and turns them into models.ScrapedData.
package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/parser"
	"github.com/go-resty/resty/v2"
)

// Scraper retrieves a page for auditing.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (*models.ScrapedData, error)
}

// StatusError is returned when the target answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPScraper scrapes pages over HTTP with resty.
type HTTPScraper struct {
	client  *resty.Client
	parser  *parser.Parser
	logger  *slog.Logger
	maxBody int64
	now     func() time.Time
}

// NewHTTPScraper configures a resty client from cfg.
func NewHTTPScraper(cfg models.ScraperConfig, logger *slog.Logger) *HTTPScraper {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scraper")

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = models.DefaultUserAgent
	}

	client := resty.New()
	SetLoggerForResty(client, logger)
	client.
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept-Language", "es,ca;q=0.9,en;q=0.8")

	return &HTTPScraper{
		client:  client,
		parser:  &parser.Parser{},
		logger:  logger,
		maxBody: cfg.MaxBodyBytes,
		now:     time.Now,
	}
}

// Scrape fetches rawURL and derives metadata, links and markdown from it.
// robots.txt and the sitemap are best effort and nil when unavailable.
func (s *HTTPScraper) Scrape(ctx context.Context, rawURL string) (*models.ScrapedData, error) {
	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	if rawBody := resp.RawBody(); rawBody != nil {
		defer rawBody.Close()
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode()}
	}

	finalURL := rawURL
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}
	base, err := url.Parse(finalURL)
	if err != nil {
		return nil, fmt.Errorf("invalid final URL %s: %w", finalURL, err)
	}

	body, truncated, err := readLimited(resp.RawBody(), s.maxBody)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", finalURL, err)
	}
	if truncated {
		s.logger.Warn("truncating oversized page", "url", finalURL, "limit", s.maxBody)
	}
	html := string(body)

	doc, err := parser.ParseHTML(html)
	if err != nil {
		return nil, err
	}

	data := &models.ScrapedData{
		URL:        rawURL,
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode(),
		HTML:       html,
		Links:      parser.ExtractLinks(doc, base),
		Metadata:   parser.ExtractMetadata(doc),
		FetchedAt:  s.now().UTC(),
	}

	if article, err := s.parser.ParseArticle(finalURL, html); err != nil {
		s.logger.Debug("readability extraction failed", "url", finalURL, "error", err)
	} else {
		data.Markdown = article.Markdown
		article.Enrich(&data.Metadata)
	}

	data.RobotsTxt = s.fetchOptional(ctx, originOf(base)+"/robots.txt")
	sitemapURL := originOf(base) + "/sitemap.xml"
	if data.RobotsTxt != nil {
		if declared := SitemapFromRobots(*data.RobotsTxt); declared != "" {
			sitemapURL = declared
		}
	}
	data.SitemapXML = s.fetchOptional(ctx, sitemapURL)

	s.logger.Info("scraped page",
		"url", finalURL,
		"status", data.StatusCode,
		"bytes", len(html),
		"links", len(data.Links),
		"robots", data.RobotsTxt != nil,
		"sitemap", data.SitemapXML != nil,
		"duration_ms", time.Since(start).Milliseconds())
	return data, nil
}

// fetchOptional returns the body of a 2xx response, or nil.
func (s *HTTPScraper) fetchOptional(ctx context.Context, target string) *string {
	resp, err := s.client.R().SetContext(ctx).Get(target)
	if err != nil {
		s.logger.Debug("optional fetch failed", "url", target, "error", err)
		return nil
	}
	if !resp.IsSuccess() {
		s.logger.Debug("optional fetch not available", "url", target, "status", resp.StatusCode())
		return nil
	}
	body := string(resp.Body())
	return &body
}

// readLimited reads at most limit bytes of r (everything when limit <= 0).
// A cut never splits a UTF-8 sequence.
func readLimited(r io.Reader, limit int64) ([]byte, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	if limit <= 0 {
		body, err := io.ReadAll(r)
		return body, false, err
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) <= limit {
		return body, false, nil
	}
	return trimPartialRune(body[:limit]), true, nil
}

func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			return b
		}
	}
	return b
}

func originOf(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// SitemapFromRobots returns the first Sitemap directive of a robots.txt.
func SitemapFromRobots(robots string) string {
	scanner := bufio.NewScanner(strings.NewReader(robots))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if ok && strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
