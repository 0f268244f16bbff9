package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/KaramelBytes/edareport-cli/internal/pipeline"
	"github.com/KaramelBytes/edareport-cli/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	runData        []string
	runOut         string
	runGridCols    int
	runMaxPairplot int
	runBins        int
	runDelimiter   string
	runDecimal     string
	runThousands   string
	runSheet       string
	runTraceFile   string
	runMetricsFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Profile the dataset and render all plots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		f := cmd.Flags()
		if f.Changed("data") && len(runData) > 0 {
			c.CandidatePaths = runData
		}
		if f.Changed("out") {
			c.OutputDir = runOut
		}
		if f.Changed("grid-cols") {
			c.GridCols = runGridCols
		}
		if f.Changed("max-pairplot-cols") {
			c.MaxPairplotCols = runMaxPairplot
		}
		if f.Changed("bins") {
			c.HistBins = runBins
		}
		if f.Changed("delimiter") {
			c.Delimiter = runDelimiter
		}
		if f.Changed("decimal") {
			c.DecimalSeparator = runDecimal
		}
		if f.Changed("thousands") {
			c.ThousandsSeparator = runThousands
		}
		if f.Changed("sheet") {
			c.Sheet = runSheet
		}
		if err := c.Validate(); err != nil {
			return err
		}
		pc, err := c.PipelineConfig()
		if err != nil {
			return err
		}

		if runTraceFile != "" {
			tf, err := os.Create(runTraceFile)
			if err != nil {
				return fmt.Errorf("create trace file: %w", err)
			}
			defer tf.Close()
			shutdown, err := telemetry.SetupTracing(tf)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
				}
			}()
		}
		var metrics *telemetry.Metrics
		if runMetricsFile != "" {
			metrics = telemetry.NewMetrics()
		}

		runner := &pipeline.Runner{Out: cmd.OutOrStdout(), Logger: logger, Metrics: metrics}
		if _, err := runner.Run(cmd.Context(), pc); err != nil {
			return err
		}
		if err := metrics.WriteTextfile(runMetricsFile); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runData, "data", nil, "dataset path to try (repeatable, replaces candidate_paths)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "output directory for PNG files (overrides config)")
	runCmd.Flags().IntVar(&runGridCols, "grid-cols", 0, "columns in the histogram/boxplot grid (overrides config)")
	runCmd.Flags().IntVar(&runMaxPairplot, "max-pairplot-cols", 0, "maximum numeric columns in the pairplot (overrides config)")
	runCmd.Flags().IntVar(&runBins, "bins", 0, "histogram bins (overrides config)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "delimiter: ','|';'|'tab'|'pipe' (auto-detect if omitted)")
	runCmd.Flags().StringVar(&runDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	runCmd.Flags().StringVar(&runThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
	runCmd.Flags().StringVar(&runSheet, "sheet", "", "XLSX: sheet name (first sheet if omitted)")
	runCmd.Flags().StringVar(&runTraceFile, "trace-file", "", "write pipeline spans as JSON to this file")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
}
