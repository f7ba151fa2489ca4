package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/runner/key"
)

func addMoods(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "moods",
		Short: "Show the mood legend and how often each mood was journaled.",
		Example: `
devo moods
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			k := key.Key{
				Journal: s.journal,
				Out:     cmd.OutOrStdout(),
			}
			err = k.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
