// Package serve runs the HTTP API.
package serve

import (
	"context"
	"errors"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/logger"
	"tableflip.dev/devo/pkg/server"
)

type Serve struct {
	Addr    string
	Rate    string
	Origins []string
	// Watch reloads the journal when the backing store changes on disk.
	Watch bool

	Journal   *journal.Store
	Assistant assistant.Service
}

func (n *Serve) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not serve, no journal")
	}
	if n.Watch {
		if err := n.Journal.Watch(ctx); err != nil {
			logger.Warn("journal watch disabled", "err", err)
		}
	}
	s, err := server.New(n.Journal, n.Assistant, server.Options{Rate: n.Rate, Origins: n.Origins})
	if err != nil {
		return err
	}
	return s.Run(ctx, n.Addr)
}
