package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/prompt"
	"tableflip.dev/devo/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing journal entry.",
		Long: base.Wrap80("Only the fields given as flags change. Everything else keeps its stored value. Use -i to edit every field in a form."),
		Example: `
devo edit 5f0c --mood joyful
devo edit 5f0c --title "Evening prayer" --tags "evening"
devo edit 5f0c -i
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

			e := edit.Edit{
				ID:          io.ID,
				Changes:     eo.Changes(cmd),
				Interactive: i.Interactive,
				EntryForm:   prompt.EntryForm,
				Prompt:      &prompt.Terminal{},
				ShowID:      io.ShowID,
				Out:         cmd.OutOrStdout(),
				Journal:     s.journal,
			}
			if cmd.Flags().Changed("mood") {
				e.Mood = eo.Mood
			}
			err = e.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
