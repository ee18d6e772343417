package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"postcheck-engine/internal/config"
	"postcheck-engine/internal/export"
	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/pipeline"
	"postcheck-engine/internal/report"
	"postcheck-engine/internal/store"
)

// runCmd labels one input file and writes the augmented table.
func runCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML config file (optional)")
	rulesPath := fs.String("rules", "", "YAML file whose rules section overrides the config")
	fs.String("input", config.DefaultInput, "input table (.csv, .ndjson or .jsonl)")
	fs.String("output", config.DefaultOutput, "output table")
	fs.String("variant", "basic", "rule set: basic or extended")
	fs.String("format", "", "output format: csv or ndjson (default: from the output extension)")
	fs.Int("workers", 0, "parallel workers (0 = one per CPU)")
	fs.Bool("strip-html", false, "convert HTML descriptions to text before extracting features")
	fs.String("db", "", "SQLite run store (empty = disabled)")
	fs.String("summary", "text", "summary on stdout: text, json or none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath, *rulesPath)
	if err != nil {
		return err
	}
	applyFlags(fs, &cfg)
	cfg, err = checkConfig(cfg)
	if err != nil {
		return err
	}

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	t, err := ingest.LoadFile(cfg.App.Input)
	if err != nil {
		return err
	}

	b, err := pipeline.Label(ctx, t, engine, pipeline.Options{Workers: cfg.App.Workers})
	if err != nil {
		return err
	}

	format := ingest.DetectFormat(cfg.App.Output)
	if cfg.App.Format != "" {
		if format, err = ingest.ParseFormat(cfg.App.Format); err != nil {
			return err
		}
	}
	if err := export.WriteFile(cfg.App.Output, format, b); err != nil {
		return err
	}

	if cfg.Store.Path != "" {
		if err := persistRun(ctx, cfg, b); err != nil {
			return err
		}
	}

	log.Printf("[run] done rows=%d fake=%d variant=%s dur_ms=%d",
		len(b.Results), b.Fake(), b.Rules.Variant, time.Since(start).Milliseconds())

	s := report.Summarize(b)
	switch cfg.App.Summary {
	case "json":
		return s.WriteJSON(stdout)
	case "none":
		return nil
	default:
		return s.WriteText(stdout)
	}
}

func persistRun(ctx context.Context, cfg config.Config, b pipeline.Batch) error {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer db.Close()

	run, err := store.SaveRun(ctx, db.Pool, b)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	log.Printf("[store] saved run id=%s rows=%d path=%s", run.ID, run.Total, cfg.Store.Path)

	if cfg.Store.RetainDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -cfg.Store.RetainDays)
		n, err := store.CleanupOldRuns(ctx, db.Pool, cutoff)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[store] cleanup removed=%d older_than_days=%d", n, cfg.Store.RetainDays)
		}
	}
	return nil
}

func loadConfig(cfgPath, rulesPath string) (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	if err := config.OverlayRules(&cfg, rulesPath); err != nil {
		return cfg, fmt.Errorf("rules overlay failed (%s): %w", rulesPath, err)
	}
	return cfg, nil
}

// checkConfig normalizes cfg, logs warnings and fails on any error.
func checkConfig(cfg config.Config) (config.Config, error) {
	out, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !vr.OK() {
		return out, errors.New("config validation failed:\n- " + strings.Join(vr.Errors, "\n- "))
	}
	return out, nil
}

// applyFlags copies explicitly set flags over the file values.
func applyFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "input":
			cfg.App.Input = v
		case "output":
			cfg.App.Output = v
		case "variant":
			cfg.App.Variant = v
		case "format":
			cfg.App.Format = v
		case "summary":
			cfg.App.Summary = v
		case "workers":
			cfg.App.Workers, _ = strconv.Atoi(v)
		case "strip-html":
			cfg.Normalize.StripHTML, _ = strconv.ParseBool(v)
		case "db":
			cfg.Store.Path = v
		case "addr":
			cfg.Serve.Addr = v
		}
	})
}
