package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where entries are stored.",
		Example: `
devo info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			i := info.Info{
				Config:  s.cfg,
				Journal: s.journal,
				Out:     cmd.OutOrStdout(),
			}
			err = i.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
