package commands

import (
	"context"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/config"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/logger"
	"tableflip.dev/devo/pkg/secret"
	"tableflip.dev/devo/pkg/store"
)

// session is the journal a command works on along with the configuration
// it was opened with.
type session struct {
	cfg     *config.Config
	journal *journal.Store
	p       store.Persistence
}

func (s *session) Close() {
	if s.p != nil {
		if err := s.p.Close(); err != nil {
			logger.Warn("closing store", "err", err)
		}
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logger.Config{Debug: debug || cfg.Debug, Dir: cfg.LogPath()}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openJournal(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	j, err := journal.Open(ctx, p)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	logger.Debug("journal opened", "backend", cfg.StorageBackend(), "entries", j.Len())
	return &session{cfg: cfg, journal: j, p: p}, nil
}

// newAssistant talks to a running devo server when serverURL is set and to
// the configured chat completion endpoint otherwise.
func newAssistant(cfg *config.Config, serverURL string) assistant.Service {
	if serverURL != "" {
		return assistant.NewRemote(serverURL)
	}
	key := secret.Resolve(cfg.Assistant.APIKey)
	return assistant.New(assistant.NewChatClient(cfg.Assistant.URL, key, cfg.Assistant.Model))
}
