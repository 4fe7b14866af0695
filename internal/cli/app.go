package cli

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/semmy-space/twofa/internal/config"
	"github.com/semmy-space/twofa/internal/index"
	"github.com/semmy-space/twofa/internal/output"
	"github.com/semmy-space/twofa/internal/secrets"
	"github.com/semmy-space/twofa/internal/vault"
)

// App carries the dependencies commands run with
type App struct {
	Config    *config.Config
	Formatter output.Formatter
	Mode      string // resolved output mode: json, plain or rich
	Log       *zap.Logger
	Globals   *Globals

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	open  func(context.Context) (*vault.Vault, error)
	vault *vault.Vault
}

// NewApp wires an App that opens the configured credential stores on first use
func NewApp(cfg *config.Config, mode string, log *zap.Logger, globals *Globals) *App {
	app := &App{
		Config:    cfg,
		Formatter: output.New(mode),
		Mode:      mode,
		Log:       log,
		Globals:   globals,
		In:        os.Stdin,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
	}
	app.open = app.openVault
	return app
}

// Vault opens the credential stores once per run
func (a *App) Vault(ctx context.Context) (*vault.Vault, error) {
	if a.vault != nil {
		return a.vault, nil
	}
	v, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	a.vault = v
	return v, nil
}

func (a *App) openVault(context.Context) (*vault.Vault, error) {
	service := a.Config.ServiceName()
	backend := a.Config.BackendName()

	store, err := secrets.Open(backend, service)
	if err != nil {
		return nil, err
	}
	idxStore, err := secrets.Open(backend, secrets.IndexService(service))
	if err != nil {
		return nil, err
	}
	a.Log.Debug("credential stores opened",
		zap.String("backend", backend),
		zap.String("service", service),
	)

	ix := index.New(idxStore, config.IndexLockPath(service),
		index.WithLockTimeout(a.Config.LockWait()),
		index.WithLogger(a.Log.Named("index")),
	)
	return vault.New(store, ix, a.Log.Named("vault")), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
