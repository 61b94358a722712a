package db

import (
	"github.com/urfave/cli/v2"
)

// Commands returns the commands that read the audit history.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "snapshots",
			Usage: "List and reopen saved audit snapshots",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List saved snapshots, newest first",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "url", Usage: "Only snapshots of this page"},
						&cli.DurationFlag{Name: "since", Usage: "Only snapshots newer than this (e.g. 168h)"},
						&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows (0 = all)"},
					},
					Action: SnapshotsAction,
				},
				{
					Name:      "show",
					Usage:     "Print a snapshot as a report (latest when no id is given)",
					ArgsUsage: "[snapshot-id]",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "markdown", Usage: "Report format: markdown, json or yaml"},
						&cli.BoolFlag{Name: "include-raw", Usage: "Keep the scraped HTML in JSON/YAML exports"},
					},
					Action: SnapshotAction,
				},
			},
		},
		{
			Name:  "batches",
			Usage: "List and inspect recorded batch runs",
			Subcommands: []*cli.Command{
				{
					Name:   "list",
					Usage:  "List batch runs, newest first",
					Flags:  []cli.Flag{&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows (0 = all)"}},
					Action: BatchesAction,
				},
				{
					Name:      "show",
					Usage:     "Show the per-page results of a batch (latest when no id is given)",
					ArgsUsage: "[batch-id]",
					Action:    BatchRunAction,
				},
			},
		},
		{
			Name:      "access",
			Usage:     "Show the last scrape attempt recorded for a page",
			ArgsUsage: "<url>",
			Action:    AccessAction,
		},
	}
}
