package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/form"
)

// EntryOptions
type EntryOptions struct {
	Title     string
	Date      string
	Mood      string
	Content   string
	Prayer    string
	Scripture string
	Tags      string
}

// flagFields maps entry flags to the form fields they fill.
var flagFields = map[string]string{
	"title":     form.FieldTitle,
	"date":      form.FieldDate,
	"content":   form.FieldContent,
	"prayer":    form.FieldPrayer,
	"scripture": form.FieldScripture,
	"tags":      form.FieldTags,
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the entry.")
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		`Date of the entry, example: --date="2024-03-05". Defaults to today.`)
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Mood, one of "+strings.Join(entry.MoodNames(), ", ")+".")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Reflection text. Remaining arguments are used when omitted.")
	cmd.Flags().StringVar(&o.Prayer, "prayer", "",
		"Prayer requests.")
	cmd.Flags().StringVarP(&o.Scripture, "scripture", "s", "",
		`Scripture reference, example: --scripture="John 3:16".`)
	cmd.Flags().StringVar(&o.Tags, "tags", "",
		`Comma separated tags, example: --tags="prayer, gratitude".`)

	_ = cmd.RegisterFlagCompletionFunc("mood", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return entry.MoodNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// Draft returns the flag values as a draft, using args as the content when
// --content is empty.
func (o *EntryOptions) Draft(args []string) entry.Draft {
	content := o.Content
	if content == "" && len(args) > 0 {
		content = strings.Join(args, " ")
	}
	return entry.Draft{
		Title:              o.Title,
		Date:               o.Date,
		Mood:               o.Mood,
		Content:            content,
		PrayerRequests:     o.Prayer,
		ScriptureReference: o.Scripture,
		Tags:               o.Tags,
	}
}

// Changes returns the form field values for the flags set on cmd. Mood is
// handled separately.
func (o *EntryOptions) Changes(cmd *cobra.Command) map[string]string {
	changes := map[string]string{}
	for flag, field := range flagFields {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(flag)
		changes[field] = v
	}
	return changes
}
