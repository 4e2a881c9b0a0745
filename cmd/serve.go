package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/oclettings/internal/server"
	"github.com/desertthunder/oclettings/internal/shared"
	"github.com/desertthunder/oclettings/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP site and blocks until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}

	lettings, profiles, err := r.resolvers()
	if err != nil {
		return err
	}

	h, err := web.NewHandler(lettings, profiles, shared.WithLogger(r.logger, "component", "web"), cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	router := web.NewRouter(h, web.Options{
		AllowedHosts: cfg.HostPatterns(),
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg.Addr(), router, shared.WithLogger(r.logger, "component", "server"), cfg.ShutdownTimeout.Duration)

	if cmd.Bool("open") {
		url := fmt.Sprintf("http://%s/", cfg.Addr())
		go func() {
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("failed to open browser", "url", url, "error", err)
			}
		}()
	}

	r.logger.Info("serving site", "addr", cfg.Addr(), "debug", cfg.Debug)
	return srv.Run(ctx)
}
