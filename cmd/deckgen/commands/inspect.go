package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/deckgen/internal/adapters/render/pptx"
)

const maxTextPreview = 50

// inspect <file.pptx>: print the slides and text of a presentation.
func inspectCmd(_ *state) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <file.pptx>",
		Short: "Print the slide size, slide count and text of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := pptx.Inspect(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			fmt.Fprintf(w, "Total Slides: %d\n", len(sum.Slides))
			fmt.Fprintf(w, "Slide Size: %g x %g in\n", sum.Width, sum.Height)
			fmt.Fprintf(w, "Charts: %d\n", sum.Charts)
			for _, s := range sum.Slides {
				fmt.Fprintf(w, "\nSlide %d: %d shapes\n", s.Index, s.Shapes)
				for _, t := range s.Texts {
					fmt.Fprintf(w, "  - Text: %s\n", preview(t))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= maxTextPreview {
		return s
	}
	return string(r[:maxTextPreview]) + "..."
}
