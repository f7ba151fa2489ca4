package options

import (
	"errors"

	"github.com/spf13/cobra"
)

var errMissingID = errors.New("requires an entry id")

// AskOptions
type AskOptions struct {
	Raw    bool
	Server string
}

func AddAskArgs(cmd *cobra.Command, o *AskOptions) {
	cmd.PersistentFlags().BoolVar(&o.Raw, "raw", false,
		"Print the reply without markdown rendering.")
	cmd.PersistentFlags().StringVar(&o.Server, "server", "",
		`Send the request to a running devo server, example: --server="http://localhost:8000".`)
}
