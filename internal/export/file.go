package export

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/pipeline"
)

// ErrLocked is returned when another run is writing the same output path.
var ErrLocked = errors.New("output is locked by another run")

// WriteFile writes b to path atomically: it holds an exclusive lock on
// path+".lock", writes path+".tmp" and renames it over path.
func WriteFile(path string, format ingest.Format, b pipeline.Batch) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrLocked)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Write(f, format, b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	log.Printf("[export] wrote rows=%d fake=%d format=%s path=%s", len(b.Results), b.Fake(), format, path)
	return nil
}
