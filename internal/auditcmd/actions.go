package auditcmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/GlobalTax/nrro-es-starter-sub005/internal/common"
	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/audit"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/report"
	"gopkg.in/yaml.v3"
)

// AuditAction audits one URL, applies manual overrides and prints the report.
func AuditAction(c *cli.Context) error {
	rt, err := common.LoadRuntime(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := rt.Logger

	formatter, err := report.ForFormat(c.String("format"), c.Bool("include-raw"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	overrides, err := ParseOverrides(c.StringSlice("set"), c.StringSlice("note"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("overrides") {
		fromFile, err := LoadOverrides(c.String("overrides"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		overrides = append(fromFile, overrides...)
	}

	maxAge := rt.Config.Scraper.MaxAge
	if c.IsSet("max-age") {
		maxAge = c.Duration("max-age")
	}
	if c.Bool("force-fetch") {
		maxAge = 0
	}

	database, err := rt.OpenDB(c.Context)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	s, err := rt.NewScraper(maxAge, database)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	newSession, err := rt.SessionFactory(s, database)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	session := newSession()

	rawURL := common.SanitizeURL(c.String("url"))
	if err := session.RunAudit(c.Context, rawURL); err != nil {
		var transportErr *audit.TransportError
		switch {
		case errors.Is(err, audit.ErrInvalidURL):
			return cli.Exit(err.Error(), 1)
		case errors.As(err, &transportErr):
			fmt.Fprintf(os.Stderr, "Audit failed: %s\n", transportErr.Message())
			return cli.Exit("", 1)
		default:
			return cli.Exit(err.Error(), 2)
		}
	}

	if err := session.Apply(overrides); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("save") {
		id, err := session.Save(c.Context)
		if err != nil {
			logger.Error("failed to save snapshot", "error", err)
			return cli.Exit(err.Error(), 2)
		}
		fmt.Fprintf(os.Stderr, "Snapshot saved: %s\n", id)
		fmt.Fprintf(os.Stderr, "Tip: Use 'seoaudit snapshots show %s' to reopen it\n", id)
	}

	return formatter.Format(c.App.Writer, session.View())
}

// ChecklistAction prints the active checklist template.
func ChecklistAction(c *cli.Context) error {
	rt, err := common.LoadRuntime(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	template, err := rt.Template()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	switch strings.ToLower(c.String("format")) {
	case "yaml", "yml", "":
		out, err := checklist.Marshal(template)
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(out)
		return err
	case "json":
		return (&report.JSONFormatter{}).Format(c.App.Writer, models.AuditSession{Categories: template, State: models.StateEmpty})
	case "table":
		printTemplate(c, template)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 1)
	}
}

func printTemplate(c *cli.Context, template []models.AuditCategory) {
	w := c.App.Writer
	fmt.Fprintf(w, "%-20s %-26s %-7s %-7s %-7s\n", "Category", "Item", "Weight", "Impact", "Effort")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, cat := range template {
		for _, it := range cat.Items {
			fmt.Fprintf(w, "%-20s %-26s %-7.0f %-7d %-7s\n", cat.ID, it.ID, it.Weight, it.Impact, it.Effort)
		}
	}
}

// ParseOverrides parses "category/item=status" and "category/item=note" flags.
func ParseOverrides(statuses, notes []string) ([]audit.Override, error) {
	var overrides []audit.Override
	for _, arg := range statuses {
		cat, item, value, err := splitOverride(arg)
		if err != nil {
			return nil, err
		}
		status := models.ItemStatus(strings.ToLower(value))
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q in %q", audit.ErrInvalidStatus, value, arg)
		}
		overrides = append(overrides, audit.Override{CategoryID: cat, ItemID: item, Status: status})
	}
	for _, arg := range notes {
		cat, item, value, err := splitOverride(arg)
		if err != nil {
			return nil, err
		}
		note := value
		overrides = append(overrides, audit.Override{CategoryID: cat, ItemID: item, Note: &note})
	}
	return overrides, nil
}

func splitOverride(arg string) (string, string, string, error) {
	target, value, ok := strings.Cut(arg, "=")
	cat, item, okPath := strings.Cut(target, "/")
	if !ok || !okPath || cat == "" || item == "" {
		return "", "", "", fmt.Errorf("invalid override %q, expected category/item=value", arg)
	}
	return strings.TrimSpace(cat), strings.TrimSpace(item), strings.TrimSpace(value), nil
}

// LoadOverrides reads overrides from a YAML file.
func LoadOverrides(path string) ([]audit.Override, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides: %w", err)
	}
	var overrides []audit.Override
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}
	return overrides, nil
}
