package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/GlobalTax/nrro-es-starter-sub005/internal/common"
)

const shutdownTimeout = 10 * time.Second

// Commands returns the serve command.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "serve",
			Usage: "Serve the audit API over HTTP",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "addr", Usage: "Listen address (default from config)"},
			},
			Action: ServeAction,
		},
	}
}

// ServeAction runs the HTTP API until SIGINT or SIGTERM.
func ServeAction(c *cli.Context) error {
	rt, err := common.LoadRuntime(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := rt.Logger

	addr := rt.Config.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
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
	template, err := rt.Template()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           New(newSession, database, template, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", addr, "db", database.Path())

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("server error", "error", err)
		return cli.Exit(err.Error(), 2)
	}
}
