package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/deckgen/internal/deckfile"
)

// validate [deck files...]: expand decks and print primitive counts.
func validateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [deck files...]",
		Short: "Expand decks and check every element against the canvas",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := st.newService(nil)
			if err != nil {
				return err
			}
			for _, req := range st.requests(args) {
				p, err := svc.Validate(cmd.Context(), req)
				if err != nil {
					return err
				}
				name := req.Deck
				if name == "" {
					name = deckfile.DefaultName
				}
				c := p.Counts()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d slides, %d texts, %d rects, %d charts\n",
					name, c.Slides, c.Texts, c.Rects, c.Charts)
			}
			return nil
		},
	}
}
