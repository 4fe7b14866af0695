package cli

import (
	"context"
	"time"

	"github.com/posener/complete"

	"github.com/semmy-space/twofa/internal/config"
	"github.com/semmy-space/twofa/internal/index"
	"github.com/semmy-space/twofa/internal/secrets"
)

// NamePredictor completes secret names from the index.
// Completion must never block or prompt, so failures yield no candidates.
func NamePredictor() complete.Predictor {
	return complete.PredictFunc(func(complete.Args) []string {
		cfg, err := config.Load()
		if err != nil {
			return nil
		}

		store, err := secrets.Open(cfg.BackendName(), secrets.IndexService(cfg.ServiceName()))
		if err != nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		names, err := index.New(store, config.IndexLockPath(cfg.ServiceName())).Enumerate(ctx)
		if err != nil {
			return nil
		}
		return names
	})
}
