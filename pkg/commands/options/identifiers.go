package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

// RequireID takes the entry id from the first argument.
func (o *IDOptions) RequireID(args []string) error {
	if len(args) < 1 || args[0] == "" {
		return errMissingID
	}
	o.ID = args[0]
	return nil
}
