package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errOutputWithMany = errors.New("--out applies to a single deck")

// build [deck files...]: render decks to .pptx.
func buildCmd(st *state) *cobra.Command {
	var (
		out          string
		outDir       string
		dataWorkbook bool
		chartImages  bool
		chartFont    string
		chartDPI     float64
		workers      int
	)
	cmd := &cobra.Command{
		Use:   "build [deck files...]",
		Short: "Render decks to .pptx (the embedded deck when none is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			if flags.Changed("out") {
				if len(args) > 1 {
					return errOutputWithMany
				}
				st.cfg.Output = out
			}
			if flags.Changed("out-dir") {
				st.cfg.OutputDir = outDir
			}
			if flags.Changed("data-workbook") {
				st.cfg.DataWorkbook = dataWorkbook
			}
			if flags.Changed("chart-images") {
				st.cfg.ChartImages = chartImages
			}
			if flags.Changed("chart-font") {
				st.cfg.ChartFont = chartFont
			}
			if flags.Changed("chart-dpi") {
				st.cfg.ChartDPI = chartDPI
			}
			if flags.Changed("workers") {
				st.cfg.Workers = workers
			}
			if err := st.cfg.Validate(); err != nil {
				return err
			}

			ledger, err := st.openLedger(ctx)
			if err != nil {
				return err
			}
			if ledger != nil {
				defer ledger.Close()
			}
			svc, err := st.newService(ledger)
			if err != nil {
				return err
			}

			results, err := svc.BuildAll(ctx, st.requests(args))
			for _, res := range results {
				if res == nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "演示文稿已生成: %s\n", res.Path)
				if res.WorkbookPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "图表数据已导出: %s\n", res.WorkbookPath)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file name (overrides the deck)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for generated files")
	cmd.Flags().BoolVar(&dataWorkbook, "data-workbook", false, "also write chart data as .xlsx")
	cmd.Flags().BoolVar(&chartImages, "chart-images", false, "embed charts as PNG pictures instead of native charts")
	cmd.Flags().StringVar(&chartFont, "chart-font", "", "TrueType font for chart pictures")
	cmd.Flags().Float64Var(&chartDPI, "chart-dpi", 0, "chart picture resolution")
	cmd.Flags().IntVar(&workers, "workers", 0, "decks built concurrently")
	return cmd
}
