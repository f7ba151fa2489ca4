package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/devo/pkg/prompt"
	"tableflip.dev/devo/pkg/secret"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the assistant API key in the system keyring.",
		Long: `The assistant uses assistant.api_key from the config or DEVO_ASSISTANT_API_KEY
when set, and the key stored in the system keyring otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key. Prompts when no key is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var key string
			if len(args) > 0 {
				key = strings.TrimSpace(args[0])
			} else {
				var err error
				if key, err = (&prompt.Terminal{}).Secret("API key"); err != nil {
					return output.HandleError(err)
				}
			}
			if err := secret.Set(key); err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key stored in the keyring.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show whether an API key is stored, masked.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			key, err := secret.Get()
			if err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), mask(key))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored API key.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := secret.Delete(); err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key removed from the keyring.")
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}

// mask keeps the last four characters of key.
func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
