package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/commands/options"
	"tableflip.dev/devo/pkg/form"
	"tableflip.dev/devo/pkg/prompt"
	"tableflip.dev/devo/pkg/runner/dictate"
	"tableflip.dev/devo/pkg/runner/speak"
	"tableflip.dev/devo/pkg/voice/local"
)

func addSpeak(topLevel *cobra.Command) {
	var text string

	cmd := &cobra.Command{
		Use:   "speak [id]",
		Short: "Read a journal entry aloud.",
		Example: `
devo speak 5f0c
devo speak --text "Be still, and know that I am God."
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entryIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			synth, err := local.NewSpeech(s.cfg.Voice.SpeechCommand)
			if err != nil {
				return output.HandleError(err)
			}
			sp := speak.Speak{
				Text:    text,
				Synth:   synth,
				Locale:  s.cfg.Voice.Locale,
				Hints:   s.cfg.Voice.Preferred,
				Out:     cmd.OutOrStdout(),
				Journal: s.journal,
			}
			if len(args) > 0 {
				sp.ID = args[0]
			}
			err = sp.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Speak this text instead of an entry.")

	topLevel.AddCommand(cmd)
}

func addDictate(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	var field string

	cmd := &cobra.Command{
		Use:   "dictate [id]",
		Short: "Dictate into a field of a new or existing entry.",
		Long: `Dictate reads transcribed lines from stdin and appends them to a field.
Pipe a speech recognizer into it, or type. An empty line finishes.`,
		Example: `
devo dictate --title "Evening" --mood peaceful
devo dictate 5f0c --field prayer-requests
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entryIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			d := dictate.Dictate{
				Draft:   eo.Draft(nil),
				Field:   field,
				Source:  local.NewLineDictation(os.Stdin),
				Locale:  s.cfg.Voice.Locale,
				Prompt:  &prompt.Terminal{},
				Out:     cmd.OutOrStdout(),
				Journal: s.journal,
			}
			if len(args) > 0 {
				d.ID = args[0]
			}
			err = d.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddEntryArgs(cmd, eo)
	cmd.Flags().StringVar(&field, "field", form.FieldContent,
		"Field to dictate into, one of "+strings.Join(form.FieldIDs(), ", ")+".")
	_ = cmd.RegisterFlagCompletionFunc("field", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return form.FieldIDs(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
