package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/okian/deckgen/internal/config"
)

var errNoLedger = errors.New("no build ledger; set ledger_path or " + config.EnvPrefix + "LEDGER_PATH")

// history [--limit n]: list recent builds.
func historyCmd(st *state) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent builds from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ledger, err := st.openLedger(ctx)
			if err != nil {
				return err
			}
			if ledger == nil {
				return errNoLedger
			}
			defer ledger.Close()

			builds, err := ledger.Recent(ctx, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, b := range builds {
				fmt.Fprintf(w, "%s  %-20s  %2d slides  %8s  %s  %s\n",
					shortID(b.ID),
					humanize.Time(b.CreatedAt),
					b.Slides,
					humanize.Bytes(uint64(b.Bytes)),
					(time.Duration(b.DurationMS) * time.Millisecond).String(),
					b.OutputPath,
				)
			}
			if len(builds) == 0 {
				fmt.Fprintln(w, "no builds recorded")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of builds to list")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
