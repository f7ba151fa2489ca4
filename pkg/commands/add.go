package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/prompt"
	"tableflip.dev/devo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [reflection]",
		Short: "Add a journal entry.",
		Example: `
devo add --title "Morning prayer" --mood peaceful Quiet start to the day.
devo add -t "Psalm 23" -m grateful -s "Psalm 23:1" --tags "psalms, rest" The Lord is my shepherd.
devo add -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			term := &prompt.Terminal{}
			a := add.Add{
				Draft:       eo.Draft(args),
				Interactive: i.Interactive,
				EntryForm:   prompt.EntryForm,
				Prompt:      term,
				ShowID:      io.ShowID,
				Out:         cmd.OutOrStdout(),
				Journal:     s.journal,
			}
			if !i.Interactive {
				a.Moods = term
			}
			err = a.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
