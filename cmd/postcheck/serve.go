package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"postcheck-engine/internal/config"
	"postcheck-engine/internal/httpapi"
	"postcheck-engine/internal/scheduler"
	"postcheck-engine/internal/store"
)

const retentionInterval = 6 * time.Hour

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML config file; created with defaults when missing")
	rulesPath := fs.String("rules", "", "YAML file whose rules section overrides the config")
	fs.String("addr", "", "listen address (default from config)")
	fs.String("db", "", "SQLite run store (empty = disabled)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cfgPath != "" {
		created, err := config.EnsureUserConfig(*cfgPath)
		if err != nil {
			return err
		}
		if created {
			log.Printf("[config] wrote defaults path=%s", *cfgPath)
		}
	}

	// Load config and keep it reloadable
	loadCfg := func() (config.Config, error) {
		cfg, err := loadConfig(*cfgPath, *rulesPath)
		if err != nil {
			return cfg, err
		}
		applyFlags(fs, &cfg)
		return checkConfig(cfg)
	}
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	deps := httpapi.Deps{
		CfgVal:      &cfgVal,
		UserCfgPath: *cfgPath,
		LoadCfg:     loadCfg,
		SaveRun:     store.SaveRun,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.DB = db.Pool

		if cfg.Store.RetainDays > 0 {
			go scheduler.Every(ctx, scheduler.Job{
				Name:     "retention",
				Interval: retentionInterval,
				Task: func(ctx context.Context) error {
					cur := cfgVal.Load().(config.Config)
					if cur.Store.RetainDays <= 0 {
						return nil
					}
					cutoff := time.Now().AddDate(0, 0, -cur.Store.RetainDays)
					n, err := store.CleanupOldRuns(ctx, db.Pool, cutoff)
					if err == nil && n > 0 {
						log.Printf("[retention] removed=%d older_than_days=%d", n, cur.Store.RetainDays)
					}
					return err
				},
			})
		}
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}

	srv := &http.Server{ReadHeaderTimeout: 5 * time.Second}
	mux := httpapi.NewMux(deps)
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	srv.Handler = httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog)

	ln, err := net.Listen("tcp", cfg.Serve.Addr)
	if err != nil {
		return err
	}
	log.Printf("[serve] listening on http://%s (variant=%s store=%q)", ln.Addr(), cfg.App.Variant, cfg.Store.Path)
	log.Printf("[serve] shutdown token=%s", token)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		log.Printf("[serve] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
