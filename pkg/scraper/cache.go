package scraper

import (
	"context"
	"log/slog"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/artifact_manager"
	"gopkg.in/yaml.v3"
)

// CachingScraper serves fresh scrapes from the artifact cache and stores
// successful scrapes of the wrapped Scraper. Failures are never cached.
type CachingScraper struct {
	next    Scraper
	manager *artifact_manager.Manager
	logger  *slog.Logger
}

// NewCachingScraper wraps next with the disk cache held by manager.
func NewCachingScraper(next Scraper, manager *artifact_manager.Manager, logger *slog.Logger) *CachingScraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingScraper{next: next, manager: manager, logger: logger.With("component", "scrape_cache")}
}

func (c *CachingScraper) Scrape(ctx context.Context, rawURL string) (*models.ScrapedData, error) {
	cached, ok, err := c.manager.Get(artifact_manager.ScrapesDir, rawURL, ".yaml")
	if err != nil {
		c.logger.Warn("cache read failed", "url", rawURL, "error", err)
	}
	if ok {
		var data models.ScrapedData
		if err := yaml.Unmarshal(cached, &data); err == nil {
			c.logger.Info("cache hit", "url", rawURL, "fetched_at", data.FetchedAt)
			return &data, nil
		}
		c.logger.Warn("discarding unreadable cache entry", "url", rawURL)
	}

	data, err := c.next.Scrape(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if payload, err := yaml.Marshal(data); err != nil {
		c.logger.Warn("cache encode failed", "url", rawURL, "error", err)
	} else if err := c.manager.Set(artifact_manager.ScrapesDir, rawURL, ".yaml", payload); err != nil {
		c.logger.Warn("cache write failed", "url", rawURL, "error", err)
	}
	if err := c.manager.Set(artifact_manager.RawHTMLDir, rawURL, ".html", []byte(data.HTML)); err != nil {
		c.logger.Warn("raw html write failed", "url", rawURL, "error", err)
	}
	return data, nil
}
