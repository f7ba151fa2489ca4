package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/runner/ask"
)

func addAsk(topLevel *cobra.Command) {
	ao := &options.AskOptions{}

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask the devotional assistant.",
		Example: `
devo ask quiet-time --duration 20 --focus "patience"
devo ask books --topic prayer --level intermediate
devo ask study "Romans 8:28-39"
devo ask question "How do I pray when I feel far from God?"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddAskArgs(cmd, ao)

	addAskQuietTime(cmd, ao)
	addAskBooks(cmd, ao)
	addAskStudy(cmd, ao)
	addAskQuestion(cmd, ao)

	topLevel.AddCommand(cmd)
}

// runAsk opens the configuration and sends a.
func runAsk(cmd *cobra.Command, ao *options.AskOptions, a *ask.Ask) error {
	cmd.SilenceUsage = true
	cfg, err := loadConfig()
	if err != nil {
		return output.HandleError(err)
	}
	a.Service = newAssistant(cfg, ao.Server)
	a.Raw = ao.Raw
	a.Out = cmd.OutOrStdout()
	return output.HandleError(a.Do(cmd.Context()))
}

func addAskQuietTime(topLevel *cobra.Command, ao *options.AskOptions) {
	req := assistant.QuietTimeRequest{}

	cmd := &cobra.Command{
		Use:   "quiet-time",
		Short: "Plan a quiet time with scripture, reflection and prayer.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsk(cmd, ao, &ask.Ask{Feature: ask.QuietTime, QuietTime: req})
		},
	}

	cmd.Flags().IntVarP(&req.Duration, "duration", "d", assistant.DefaultDuration, "Length of the quiet time in minutes.")
	cmd.Flags().StringVarP(&req.FocusArea, "focus", "f", "", "Spiritual area to focus on.")

	topLevel.AddCommand(cmd)
}

func addAskBooks(topLevel *cobra.Command, ao *options.AskOptions) {
	req := assistant.BookRequest{}

	cmd := &cobra.Command{
		Use:   "books",
		Short: "Recommend Christian books.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsk(cmd, ao, &ask.Ask{Feature: ask.Books, Books: req})
		},
	}

	cmd.Flags().StringVarP(&req.Topic, "topic", "t", "", "Topic the books should cover.")
	cmd.Flags().StringVarP(&req.SpiritualLevel, "level", "l", assistant.DefaultLevel,
		"Reader's spiritual level, one of "+strings.Join(assistant.Levels(), ", ")+".")
	cmd.Flags().IntVarP(&req.Count, "count", "n", assistant.DefaultCount, "Number of books.")
	_ = cmd.RegisterFlagCompletionFunc("level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return assistant.Levels(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addAskStudy(topLevel *cobra.Command, ao *options.AskOptions) {
	cmd := &cobra.Command{
		Use:   "study <passage>",
		Short: "Bible study guide for a passage.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := assistant.StudyRequest{Passage: strings.Join(args, " ")}
			return runAsk(cmd, ao, &ask.Ask{Feature: ask.Study, Study: req})
		},
	}

	topLevel.AddCommand(cmd)
}

func addAskQuestion(topLevel *cobra.Command, ao *options.AskOptions) {
	cmd := &cobra.Command{
		Use:   "question <question>",
		Short: "Answer a faith question.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := assistant.QuestionRequest{Question: strings.Join(args, " ")}
			return runAsk(cmd, ao, &ask.Ask{Feature: ask.Question, Question: req})
		},
	}

	topLevel.AddCommand(cmd)
}
