package db

import (
	"fmt"
	"strconv"

	dbpkg "github.com/GlobalTax/nrro-es-starter-sub005/pkg/db"
	"github.com/urfave/cli/v2"
)

// GetSnapshotIDOrLatest returns the snapshot id from args, or the newest
// snapshot if none was given.
func GetSnapshotIDOrLatest(c *cli.Context, database *dbpkg.DB) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}
	snapshots, err := database.ListSnapshots(c.Context, dbpkg.SnapshotFilter{Limit: 1})
	if err != nil {
		return "", fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	if len(snapshots) == 0 {
		return "", fmt.Errorf("no snapshots found. Run 'seoaudit audit --url \"...\" --save' first")
	}
	return snapshots[0].ID, nil
}

// GetBatchIDOrLatest returns the batch id from args, or the newest batch run
// if none was given.
func GetBatchIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListBatchRuns(c.Context, 1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest batch: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no batches found. Run 'seoaudit batch --urls \"...\"' first")
		}
		return runs[0].BatchID, nil
	}

	batchID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid batch ID: %s", c.Args().First())
	}
	return batchID, nil
}
