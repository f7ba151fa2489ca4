package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	output = &base.OutputOptions{}
	debug  bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "devo",
		Short: base.Wrap80("Devotional journaling and quiet time on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addMoods(topLevel)
	addReport(topLevel)
	addSpeak(topLevel)
	addDictate(topLevel)
	addAsk(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
