package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/runner/get"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list [search]",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first.",
		Long: base.Wrap80("List journal entries, newest first. Filters combine: an entry is " +
			"shown when it matches the search text, the mood and the date range."),
		Example: `
devo list
devo ls --mood grateful --range week
devo list psalm
devo list --calendar
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			criteria, err := fo.Criteria(args)
			if err != nil {
				return output.HandleError(err)
			}
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			g := get.Get{
				ShowID:   io.ShowID,
				Criteria: criteria,
				Calendar: fo.Calendar,
				JSON:     output.JSON,
				Out:      cmd.OutOrStdout(),
				Journal:  s.journal,
			}
			err = g.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one journal entry.",
		Example: `
devo show 5f0c
devo show 5f0c --json
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

			g := get.Get{
				ShowID:  true,
				ID:      io.ID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Journal: s.journal,
			}
			err = g.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
