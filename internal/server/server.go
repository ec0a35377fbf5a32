// Package server exposes the read-only JSON API used by the schedule
// board screens, plus the scheduled history purge.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/manshift/internal/config"
	"github.com/zulandar/manshift/internal/db"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Port int
	Out  io.Writer
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully. When the config carries a purge cron expression,
// a background loop deletes stale inactive sessions on that schedule.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, opts.DB)

	if opts.Cfg != nil && opts.Cfg.PurgeCron != "" {
		go runPurgeLoop(ctx, opts.DB, opts.Cfg, opts.Out)
	}

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Manshift API running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// runPurgeLoop fires the history purge on the configured cron schedule
// until the context is cancelled.
func runPurgeLoop(ctx context.Context, gdb *gorm.DB, cfg *config.Config, out io.Writer) {
	d := nextCronDuration(cfg.PurgeCron)
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			cutoff := time.Now().Add(-time.Duration(cfg.PurgeAfterHours) * time.Hour)
			n, err := db.PurgeHistory(gdb, cutoff, false)
			if out != nil {
				if err != nil {
					fmt.Fprintf(out, "purge: %v\n", err)
				} else if n > 0 {
					fmt.Fprintf(out, "purged %d inactive sessions older than %dh\n", n, cfg.PurgeAfterHours)
				}
			}
			if d := nextCronDuration(cfg.PurgeCron); d > 0 {
				timer.Reset(d)
			} else {
				return
			}
		}
	}
}
