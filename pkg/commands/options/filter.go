// Package options defines shared flag helpers for CLI commands.
package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/filter"
	"tableflip.dev/devo/pkg/timeutil"
)

// FilterOptions captures the list filters.
type FilterOptions struct {
	Search   string
	Mood     string
	Range    string
	Calendar bool
}

// AddFilterArgs wires filter flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "q", "",
		"Only entries whose title, content or tags contain this text.")
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Only entries with this mood.")
	cmd.Flags().StringVarP(&o.Range, "range", "r", "",
		"Only entries from the "+strings.Join(timeutil.Ranges()[1:], ", ")+" before today.")
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Show a calendar of this month with journaled days highlighted.")

	_ = cmd.RegisterFlagCompletionFunc("mood", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return entry.MoodNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("range", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return timeutil.Ranges(), cobra.ShellCompDirectiveNoFileComp
	})
}

// Criteria parses the flags. Positional args are joined into the search.
func (o *FilterOptions) Criteria(args []string) (filter.Criteria, error) {
	search := o.Search
	if search == "" && len(args) > 0 {
		search = strings.Join(args, " ")
	}
	return filter.ParseCriteria(search, o.Mood, o.Range)
}
