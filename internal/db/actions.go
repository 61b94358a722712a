package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/GlobalTax/nrro-es-starter-sub005/internal/common"
	dbpkg "github.com/GlobalTax/nrro-es-starter-sub005/pkg/db"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/report"
)

const timeLayout = "2006-01-02 15:04:05"

func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	rt, err := common.LoadRuntime(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	database, err := rt.OpenDB(c.Context)
	if err != nil {
		rt.Logger.Error("failed to open database", "error", err)
		return nil, cli.Exit(err.Error(), 2)
	}
	return database, nil
}

// lookupExit maps a missing row to exit code 1 and anything else to 2.
func lookupExit(err error) error {
	if errors.Is(err, dbpkg.ErrNotFound) {
		return cli.Exit(err.Error(), 1)
	}
	return cli.Exit(err.Error(), 2)
}

// SnapshotsAction lists saved snapshots.
func SnapshotsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	filter := dbpkg.SnapshotFilter{
		URL:   common.SanitizeURL(c.String("url")),
		Limit: c.Int("limit"),
	}
	if since := c.Duration("since"); since > 0 {
		filter.Since = time.Now().Add(-since)
	}

	snapshots, err := database.ListSnapshots(c.Context, filter)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	w := c.App.Writer
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots found")
		return nil
	}

	fmt.Fprintf(w, "%-36s %-20s %-6s %-9s %-50s\n", "ID", "Created", "Score", "State", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 124))
	for _, s := range snapshots {
		fmt.Fprintf(w, "%-36s %-20s %-6d %-9s %-50s\n",
			s.ID,
			s.CreatedAt.Format(timeLayout),
			s.GlobalScore,
			s.State,
			s.URL,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d snapshots\n", len(snapshots))
	fmt.Fprintf(w, "\nTip: Use 'seoaudit snapshots show <id>' to reopen one\n")
	return nil
}

// SnapshotAction prints one snapshot with the report formatters.
func SnapshotAction(c *cli.Context) error {
	formatter, err := report.ForFormat(c.String("format"), c.Bool("include-raw"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := GetSnapshotIDOrLatest(c, database)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	snap, err := database.GetSnapshot(c.Context, id)
	if err != nil {
		return lookupExit(err)
	}

	if _, ok := formatter.(*report.MarkdownFormatter); ok {
		fmt.Fprintf(c.App.Writer, "<!-- snapshot %s saved %s -->\n", snap.ID, snap.CreatedAt.Format(time.RFC3339))
	}
	return formatter.Format(c.App.Writer, snap.Session)
}

// BatchesAction lists recorded batch runs.
func BatchesAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListBatchRuns(c.Context, c.Int("limit"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No batches found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-8s %-8s %-8s\n", "ID", "Created", "URLs", "Success", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 54))
	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-8d %-8d %-8d\n",
			r.BatchID,
			r.CreatedAt.Format(timeLayout),
			r.URLCount,
			r.SuccessCount,
			r.FailedCount,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d batches\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'seoaudit batches show <id>' to see details\n")
	return nil
}

// BatchRunAction shows one batch run and its per-page results.
func BatchRunAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	batchID, err := GetBatchIDOrLatest(c, database)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	run, err := database.GetBatchRun(c.Context, batchID)
	if err != nil {
		return lookupExit(err)
	}
	results, err := database.GetBatchResults(c.Context, batchID)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Batch %d\n", run.BatchID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Format(timeLayout))
	fmt.Fprintf(w, "URLs:        %d total (%d success, %d failed)\n", run.URLCount, run.SuccessCount, run.FailedCount)

	fmt.Fprintf(w, "\nResults (%d):\n", len(results))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, r := range results {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, status, r.URL)
		if r.Success {
			fmt.Fprintf(w, "    Score: %d/100", r.OverallScore)
			if r.SnapshotID != "" {
				fmt.Fprintf(w, " | Snapshot: %s", r.SnapshotID)
			}
			fmt.Fprintln(w)
		} else {
			fmt.Fprintf(w, "    Error: %s\n", r.Error)
		}
	}
	return nil
}

// AccessAction prints the last recorded scrape attempt for a page.
func AccessAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("missing URL argument", 1)
	}
	rawURL := common.SanitizeURL(c.Args().First())

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	urlID, err := database.GetURLID(c.Context, rawURL)
	if err != nil {
		return lookupExit(err)
	}
	access, err := database.GetLastAccess(c.Context, urlID)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "[#%d] %s\n", urlID, rawURL)
	if access == nil {
		fmt.Fprintln(w, "No accesses recorded")
		return nil
	}
	result := "success"
	if !access.Success {
		result = "failed"
		if access.ErrorType != "" {
			result += " (" + access.ErrorType + ")"
		}
	}
	fmt.Fprintf(w, "Last access: %s | HTTP %d | %s\n", access.AccessedAt.Format(timeLayout), access.StatusCode, result)
	return nil
}
