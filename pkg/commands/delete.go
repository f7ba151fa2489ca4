package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/prompt"
	"tableflip.dev/devo/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a journal entry.",
		Example: `
devo delete 5f0c
devo rm 5f0c -y
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return io.RequireID(args)
		},
		ValidArgsFunction: entryIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := remove.Remove{
				ID:      io.ID,
				Prompt:  &prompt.Terminal{Yes: i.Yes},
				Out:     cmd.OutOrStdout(),
				Journal: s.journal,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddYesArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
