package auditcmd

import (
	"github.com/urfave/cli/v2"
)

// Commands returns the audit and checklist commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "audit",
			Usage: "Scrape a page, run the checklist and print the report",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Page to audit", Required: true},
				&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "markdown", Usage: "Report format: markdown, json or yaml"},
				&cli.BoolFlag{Name: "save", Usage: "Persist a snapshot of the audit"},
				&cli.StringSliceFlag{Name: "set", Usage: "Override an item status: category/item=status (repeatable)"},
				&cli.StringSliceFlag{Name: "note", Usage: "Attach a note: category/item=text (repeatable)"},
				&cli.StringFlag{Name: "overrides", Usage: "YAML file with a list of overrides"},
				&cli.DurationFlag{Name: "max-age", Usage: "Reuse cached scrapes younger than this (needs a cache dir)"},
				&cli.BoolFlag{Name: "force-fetch", Usage: "Ignore the scrape cache"},
				&cli.BoolFlag{Name: "include-raw", Usage: "Keep the scraped HTML in JSON/YAML exports"},
			},
			Action: AuditAction,
		},
		{
			Name:  "checklist",
			Usage: "Print the active checklist template",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "Output format: yaml, json or table"},
			},
			Action: ChecklistAction,
		},
	}
}
