package commands

import (
	"github.com/spf13/cobra"

	"github.com/okian/deckgen/internal/deckfile"
)

// template: print the embedded deck description as a starting point.
func templateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the embedded deck description (YAML)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(deckfile.DefaultSource())
			return err
		},
	}
}
