package cli

import (
	"context"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/logger"
	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/store"
)

// session holds everything a command needs from the database. Both stores
// point at the same file.
type session struct {
	cfg       *config.Config
	samples   *store.SampleStore
	prefStore *store.PreferenceStore
	prefs     *prefs.Set
}

// openSession loads config, opens both stores and reads this client's
// preferences once.
func openSession(ctx context.Context, opts config.LoadOptions) (*session, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	samples, err := store.OpenSampleStore(cfg.DB)
	if err != nil {
		return nil, err
	}
	samples.SetLogger(logger.New("store"))

	prefStore, err := store.OpenPreferenceStore(cfg.DB, cfg.Prefix)
	if err != nil {
		samples.Close()
		return nil, err
	}
	prefStore.SetLogger(logger.New("prefs"))

	set, err := prefs.Open(ctx, prefStore, prefs.Defaults())
	if err != nil {
		samples.Close()
		prefStore.Close()
		return nil, err
	}

	return &session{
		cfg:       cfg,
		samples:   samples,
		prefStore: prefStore,
		prefs:     set,
	}, nil
}

func (s *session) Close() {
	s.samples.Close()
	s.prefStore.Close()
}
