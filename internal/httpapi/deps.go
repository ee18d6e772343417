package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"postcheck-engine/internal/config"
	"postcheck-engine/internal/pipeline"
	"postcheck-engine/internal/store"
)

type Deps struct {
	// DB is nil when the run store is disabled.
	DB *sql.DB

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// SaveRun persists a labeled batch (inject for testability)
	SaveRun func(ctx context.Context, db *sql.DB, b pipeline.Batch) (store.Run, error)
}
