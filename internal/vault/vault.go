package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/semmy-space/twofa/internal/fault"
	"github.com/semmy-space/twofa/internal/index"
	"github.com/semmy-space/twofa/internal/passcode"
	"github.com/semmy-space/twofa/internal/secrets"
)

// ErrInvalidName is returned for names that cannot be stored
var ErrInvalidName = errors.New("invalid name")

// ErrCannotEnumerate is returned by Reindex when the backend has no key listing
var ErrCannotEnumerate = errors.New("credential store cannot enumerate its entries")

// Code is a generated passcode
type Code struct {
	Name      string
	Value     string
	Remaining time.Duration
}

// Vault stores TOTP secrets one per name and keeps the name index in step.
type Vault struct {
	secrets secrets.Store
	index   *index.Index
	now     func() time.Time
	log     *zap.Logger
}

// New creates a Vault over the given secret store and index
func New(store secrets.Store, ix *index.Index, log *zap.Logger) *Vault {
	if log == nil {
		log = zap.NewNop()
	}
	return &Vault{
		secrets: store,
		index:   ix,
		now:     time.Now,
		log:     log,
	}
}

// WithClock replaces the time source
func (v *Vault) WithClock(now func() time.Time) *Vault {
	v.now = now
	return v
}

// Push stores secret under name and registers the name.
// The secret may be raw base32 or an otpauth URI.
func (v *Vault) Push(ctx context.Context, name, secret string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	normalized, err := passcode.Normalize(secret)
	if err != nil {
		return err
	}

	if err := v.secrets.Set(name, normalized); err != nil {
		return err
	}
	v.log.Debug("secret stored", zap.String("name", name))

	if err := v.index.Add(ctx, name); err != nil {
		return fmt.Errorf("secret stored but index update failed (re-run push or reindex): %w", err)
	}
	return nil
}

// Code returns the current passcode for name. The index is not consulted.
func (v *Vault) Code(ctx context.Context, name string) (Code, error) {
	if err := ctx.Err(); err != nil {
		return Code{}, err
	}

	secret, err := v.secrets.Get(name)
	if err != nil {
		return Code{}, err
	}

	at := v.now()
	value, err := passcode.Generate(secret, at)
	if err != nil {
		return Code{}, fault.E(fault.InvalidSecret, "get", name, errors.Unwrap(err))
	}

	return Code{
		Name:      name,
		Value:     value,
		Remaining: passcode.Remaining(at),
	}, nil
}

// Delete removes the secret for name and unregisters it. The index is
// updated even when the secret is already gone; NotFound is reported after.
func (v *Vault) Delete(ctx context.Context, name string) error {
	removeErr := v.secrets.Delete(name)
	if removeErr != nil && !fault.Is(removeErr, fault.NotFound) {
		return removeErr
	}

	if err := v.index.Discard(ctx, name); err != nil {
		return err
	}
	v.log.Debug("secret deleted", zap.String("name", name), zap.Bool("existed", removeErr == nil))

	return removeErr
}

// List returns registered names in ascending order
func (v *Vault) List(ctx context.Context) ([]string, error) {
	return v.index.Enumerate(ctx)
}

// Reindex rebuilds the index from the secret store's own listing.
func (v *Vault) Reindex(ctx context.Context) ([]string, error) {
	lister, ok := v.secrets.(secrets.Lister)
	if !ok {
		return nil, ErrCannotEnumerate
	}

	names, err := lister.List()
	if err != nil {
		return nil, err
	}

	if err := v.index.Replace(ctx, names); err != nil {
		return nil, err
	}
	v.log.Debug("index rebuilt", zap.Int("count", len(names)))

	return v.index.Enumerate(ctx)
}

// ValidateName rejects empty names and names with control characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
		}
	}
	return nil
}
