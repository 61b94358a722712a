package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/GlobalTax/nrro-es-starter-sub005/internal/auditcmd"
	"github.com/GlobalTax/nrro-es-starter-sub005/internal/batchcmd"
	"github.com/GlobalTax/nrro-es-starter-sub005/internal/db"
	"github.com/GlobalTax/nrro-es-starter-sub005/internal/server"
	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

var version = "dev"

func newApp() *cli.App {
	var commands []*cli.Command
	commands = append(commands, auditcmd.Commands()...)
	commands = append(commands, batchcmd.Commands()...)
	commands = append(commands, db.Commands()...)
	commands = append(commands, server.Commands()...)

	return &cli.App{
		Name:    "seoaudit",
		Usage:   "Marketing and SEO audits for web pages",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path", EnvVars: []string{models.EnvDatabasePath}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{models.EnvLogLevel}},
			&cli.StringFlag{Name: "checklist", Usage: "YAML checklist catalog replacing the built-in one"},
			&cli.StringFlag{Name: "cache-dir", Usage: "Directory for cached scrapes (disabled when empty)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
		},
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
