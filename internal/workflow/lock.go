package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"better/internal/logging"
)

const lockFileName = ".better.lock"

// Lock serializes better runs that write to the same transcode output root.
// It blocks until the lock is free or ctx ends. The returned func releases
// the lock.
func (p *Processor) Lock(ctx context.Context) (func(), error) {
	path := filepath.Join(p.settings.TranscodeOutput, lockFileName)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		p.logger.Info("waiting for another better run", logging.String("lock", path))
		ok, err = lock.TryLockContext(ctx, 250*time.Millisecond)
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("acquire lock: %s is held by another run", path)
		}
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release lock", logging.String("lock", path), logging.Error(err))
		}
	}, nil
}
