package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var since, until string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Entries in a date window grouped by mood.",
		Example: `
devo report
devo report --since 2024-03-01 --until 2024-03-31
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := report.Report{
				Since:   since,
				Until:   until,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
				Journal: s.journal,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "First day of the report, YYYY-MM-DD. Defaults to a week before --until.")
	cmd.Flags().StringVar(&until, "until", "", "Last day of the report, YYYY-MM-DD. Defaults to today.")
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
