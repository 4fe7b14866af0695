package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

var errLockHeld = errors.New("index lock held by another process")

// acquire takes the exclusive lock at path, polling with exponential
// backoff until timeout or ctx is done. The returned func releases it.
func acquire(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(path)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = timeout

	err := backoff.Retry(func() error {
		locked, err := lock.TryLock()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !locked {
			return errLockHeld
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if errors.Is(err, errLockHeld) {
			return nil, fmt.Errorf("failed to acquire lock: timeout after %s", timeout)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return func() { _ = lock.Unlock() }, nil
}
