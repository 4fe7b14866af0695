package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/semmy-space/twofa/internal/fault"
	"github.com/semmy-space/twofa/internal/secrets"
)

// RecordKey is the key of the index record inside the index namespace
const RecordKey = "names"

// DefaultLockTimeout bounds how long an update waits for the lock
const DefaultLockTimeout = 10 * time.Second

// Index is the persisted set of registered names
type Index struct {
	store       secrets.Store
	lockPath    string
	lockTimeout time.Duration
	log         *zap.Logger
}

// Option configures an Index
type Option func(*Index)

// WithLockTimeout overrides DefaultLockTimeout
func WithLockTimeout(d time.Duration) Option {
	return func(ix *Index) {
		if d > 0 {
			ix.lockTimeout = d
		}
	}
}

// WithLogger sets the debug logger
func WithLogger(log *zap.Logger) Option {
	return func(ix *Index) {
		if log != nil {
			ix.log = log
		}
	}
}

// New returns an index persisted in store and locked through lockPath.
func New(store secrets.Store, lockPath string, opts ...Option) *Index {
	ix := &Index{
		store:       store,
		lockPath:    lockPath,
		lockTimeout: DefaultLockTimeout,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Add registers name. Adding a registered name changes nothing.
func (ix *Index) Add(ctx context.Context, name string) error {
	return ix.update(ctx, "add", func(names []string) ([]string, bool) {
		if slices.Contains(names, name) {
			return names, false
		}
		return append(names, name), true
	})
}

// Discard unregisters name. A missing index or name is not an error.
func (ix *Index) Discard(ctx context.Context, name string) error {
	return ix.update(ctx, "discard", func(names []string) ([]string, bool) {
		i := slices.Index(names, name)
		if i < 0 {
			return names, false
		}
		return slices.Delete(names, i, i+1), true
	})
}

// Replace overwrites the whole set
func (ix *Index) Replace(ctx context.Context, names []string) error {
	return ix.update(ctx, "replace", func([]string) ([]string, bool) {
		return dedupe(names), true
	})
}

// Enumerate returns the registered names in ascending order.
// A missing index yields an empty slice.
func (ix *Index) Enumerate(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, _, err := ix.load()
	if err != nil {
		return nil, err
	}
	return names, nil
}

// update applies fn to the current set under the lock and writes the
// result back when fn reports a change.
func (ix *Index) update(ctx context.Context, op string, fn func([]string) ([]string, bool)) error {
	unlock, err := acquire(ctx, ix.lockPath, ix.lockTimeout)
	if err != nil {
		return fault.E(fault.Store, op, "", err)
	}
	defer unlock()

	names, exists, err := ix.load()
	if err != nil {
		return err
	}

	next, changed := fn(names)
	if !changed {
		ix.log.Debug("index unchanged", zap.String("op", op), zap.Bool("exists", exists))
		return nil
	}

	data, err := Encode(next)
	if err != nil {
		return fault.E(fault.Store, op, "", err)
	}
	if err := ix.store.Set(RecordKey, string(data)); err != nil {
		return err
	}
	ix.log.Debug("index written", zap.String("op", op), zap.Int("count", len(next)))
	return nil
}

// load reads the set; exists is false when no record is stored yet.
func (ix *Index) load() (names []string, exists bool, err error) {
	raw, err := ix.store.Get(RecordKey)
	if err != nil {
		if fault.Is(err, fault.NotFound) {
			return []string{}, false, nil
		}
		return nil, false, err
	}

	names, err = Decode([]byte(raw))
	if err != nil {
		return nil, true, fault.E(fault.IndexCorrupt, "load", "", err)
	}
	return names, true, nil
}

var errNotArray = errors.New("index is not a JSON array of strings")

// Encode serializes names as a sorted JSON array without duplicates
func Encode(names []string) ([]byte, error) {
	return json.Marshal(dedupe(names))
}

// Decode parses a JSON array of strings, returning it sorted and deduplicated
func Decode(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotArray, err)
	}
	if names == nil {
		// "null" decodes without error
		return nil, errNotArray
	}
	return dedupe(names), nil
}

func dedupe(names []string) []string {
	out := slices.Clone(names)
	if out == nil {
		out = []string{}
	}
	sort.Strings(out)
	return slices.Compact(out)
}
