package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	var (
		addr    string
		rate    string
		origins []string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal and the assistant over HTTP.",
		Example: `
devo serve
devo serve --addr :9000 --rate 10-M --watch
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			sv := serve.Serve{
				Addr:      s.cfg.Server.Addr,
				Rate:      s.cfg.Server.Rate,
				Origins:   origins,
				Watch:     watch,
				Journal:   s.journal,
				Assistant: newAssistant(s.cfg, ""),
			}
			if cmd.Flags().Changed("addr") {
				sv.Addr = addr
			}
			if cmd.Flags().Changed("rate") {
				sv.Rate = rate
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "devo listening on %s\n", sv.Addr)
			err = sv.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address. Defaults to server.addr from the config.")
	cmd.Flags().StringVar(&rate, "rate", "", `Assistant rate limit, example: --rate="30-M".`)
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Allowed CORS origins. Defaults to any origin.")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload entries when the store changes on disk.")

	topLevel.AddCommand(cmd)
}
