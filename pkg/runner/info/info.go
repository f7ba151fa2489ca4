package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/devo/pkg/config"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/secret"
)

type Info struct {
	Config  *config.Config
	Journal *journal.Store
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("DEVO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "DEVO_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "DEVO_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:    ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.StorageBackend())
	_, _ = fmt.Fprintln(out, "Config.key:     ", n.Config.StorageKey())
	_, _ = fmt.Fprintln(out, "Config.logs:    ", n.Config.LogPath())
	_, _ = fmt.Fprintln(out, "Assistant.url:  ", n.Config.Assistant.URL)
	_, _ = fmt.Fprintln(out, "Assistant.model:", n.Config.Assistant.Model)
	_, _ = fmt.Fprintln(out, "Assistant.key:  ", keySource(n.Config.Assistant.APIKey))

	if n.Journal == nil {
		return fmt.Errorf("failed to open the journal")
	}
	_, _ = fmt.Fprintf(out, "Entries: %d\n", n.Journal.Len())
	return nil
}

func keySource(configured string) string {
	if configured != "" {
		return "config"
	}
	if _, err := secret.Get(); err == nil {
		return "keyring"
	}
	return "not set"
}
