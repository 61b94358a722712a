package batchcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/GlobalTax/nrro-es-starter-sub005/internal/common"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/batch"
)

// Commands returns the batch command.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "batch",
			Usage: "Audit a list of pages sequentially and record the run",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "urls", Usage: "Comma-separated list of pages"},
				&cli.StringFlag{Name: "file", Usage: "File with one URL per line"},
				&cli.DurationFlag{Name: "cooldown", Usage: "Pause between pages (default from config)"},
				&cli.BoolFlag{Name: "save", Usage: "Persist a snapshot for every audited page"},
			},
			Action: BatchAction,
		},
	}
}

// BatchAction audits every URL and prints a summary table.
func BatchAction(c *cli.Context) error {
	rt, err := common.LoadRuntime(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := rt.Logger

	var input []string
	switch {
	case c.IsSet("urls") && c.IsSet("file"):
		return cli.Exit("use either --urls or --file, not both", 1)
	case c.IsSet("file"):
		input, err = common.ReadURLFile(c.String("file"))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	case c.IsSet("urls"):
		input = strings.Split(c.String("urls"), ",")
	default:
		return cli.Exit("no URLs given, use --urls or --file", 1)
	}

	urls, invalid := common.SanitizeAndValidateURLs(input)
	for _, u := range invalid {
		fmt.Fprintf(os.Stderr, "Skipping invalid URL: %q\n", u)
	}
	if len(urls) == 0 {
		return cli.Exit("no valid URLs to audit", 1)
	}

	database, err := rt.OpenDB(c.Context)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	s, err := rt.NewScraper(rt.Config.Scraper.MaxAge, database)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	newSession, err := rt.SessionFactory(s, database)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	cooldown := rt.Config.Batch.Cooldown
	if c.IsSet("cooldown") {
		cooldown = c.Duration("cooldown")
	}
	driver := batch.NewDriver(newSession,
		batch.WithCooldown(cooldown),
		batch.WithSnapshots(c.Bool("save")),
		batch.WithRecorder(database),
		batch.WithLogger(logger),
	)

	report, runErr := driver.Run(c.Context, urls)
	printReport(c, report)

	switch {
	case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
		return cli.Exit("batch interrupted", 1)
	case runErr != nil:
		return cli.Exit(runErr.Error(), 2)
	case report.Failed > 0 || len(invalid) > 0:
		return cli.Exit("", 1)
	}
	return nil
}

func printReport(c *cli.Context, report *batch.Report) {
	w := c.App.Writer
	fmt.Fprintf(w, "%-4s %-50s %-8s %-6s %-36s\n", "#", "URL", "Result", "Score", "Snapshot / Error")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, s := range report.Summaries {
		result, detail := "ok", s.SnapshotID
		if !s.Success {
			result = "failed"
		}
		if s.Error != "" {
			detail = s.Error
		}
		fmt.Fprintf(w, "%-4d %-50s %-8s %-6d %-36s\n", i+1, truncate(s.URL, 50), result, s.OverallScore, detail)
	}
	fmt.Fprintf(w, "\nTotal: %d audited (%d ok, %d failed)\n", len(report.Summaries), report.Succeeded, report.Failed)
	if report.BatchID != 0 {
		fmt.Fprintf(w, "\nTip: Use 'seoaudit batches show %d' to see this run again\n", report.BatchID)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
