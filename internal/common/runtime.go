package common

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/artifact_manager"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/audit"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/db"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/insights"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/scraper"
)

// Runtime holds the configuration and logger shared by all commands.
type Runtime struct {
	Config models.Config
	Logger *slog.Logger
}

// LoadRuntime resolves configuration from defaults, the --config file, the
// environment and finally the global CLI flags.
func LoadRuntime(c *cli.Context) (*Runtime, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("checklist") {
		cfg.Checklist.Path = c.String("checklist")
	}
	if c.IsSet("cache-dir") {
		cfg.Scraper.CacheDir = c.String("cache-dir")
	}
	if err := insights.BandsFromConfig(cfg.Insights).Validate(); err != nil {
		return nil, err
	}

	return &Runtime{
		Config: cfg,
		Logger: NewLogger(c.App.ErrWriter, cfg.Log.Level, c.Bool("quiet")),
	}, nil
}

// OpenDB opens the configured database.
func (r *Runtime) OpenDB(ctx context.Context) (*db.DB, error) {
	database, err := db.Open(ctx, r.Config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// Template returns the active checklist: the configured catalog file, or the
// built-in one.
func (r *Runtime) Template() ([]models.AuditCategory, error) {
	if r.Config.Checklist.Path == "" {
		return checklist.CreateDefault(), nil
	}
	template, err := checklist.Load(r.Config.Checklist.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist %s: %w", r.Config.Checklist.Path, err)
	}
	return template, nil
}

// NewScraper builds the HTTP scraper, wrapped with the disk cache when a
// cache directory is configured and with access tracking when tracker is set.
func (r *Runtime) NewScraper(maxAge time.Duration, tracker scraper.AccessTracker) (scraper.Scraper, error) {
	var s scraper.Scraper = scraper.NewHTTPScraper(r.Config.Scraper, r.Logger)
	if tracker != nil {
		s = scraper.NewTrackingScraper(s, tracker, r.Logger)
	}
	if r.Config.Scraper.CacheDir != "" {
		manager, err := artifact_manager.NewManager(r.Config.Scraper.CacheDir, maxAge)
		if err != nil {
			return nil, err
		}
		s = scraper.NewCachingScraper(s, manager, r.Logger)
	}
	return s, nil
}

// SessionFactory returns a constructor of independent sessions sharing s,
// the active checklist and store (which may be nil).
func (r *Runtime) SessionFactory(s scraper.Scraper, store audit.Store) (func() *audit.Session, error) {
	template, err := r.Template()
	if err != nil {
		return nil, err
	}
	opts := []audit.Option{
		audit.WithLogger(r.Logger),
		audit.WithTemplate(template),
		audit.WithBands(insights.BandsFromConfig(r.Config.Insights)),
	}
	if store != nil {
		opts = append(opts, audit.WithStore(store))
	}
	return func() *audit.Session { return audit.NewSession(s, opts...) }, nil
}

// ReadURLFile reads one URL per line, skipping blanks and # comments.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}
