package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	cfgpkg "github.com/KaramelBytes/edareport-cli/internal/config"
	"github.com/KaramelBytes/edareport-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration and the logger built from it
	cfg    *cfgpkg.Global
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "edareport",
	Short: "edareport: summary statistics and exploratory plots for a tabular dataset",
	Long: `edareport locates a tabular dataset (CSV, TSV, zipped CSV or XLSX), prints its schema,
summary statistics and missing-value counts, and renders histograms, boxplots, a correlation
heatmap and a pairplot of its numeric columns as PNG files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edareport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so commands still run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	format := cfg.LogFormat
	if rootCmd.PersistentFlags().Changed("log-format") && logFormat != "" {
		format = logFormat
	}
	logger = logging.New(os.Stderr, level, format)
}

// currentConfig returns a copy of the loaded configuration, or the defaults
// when none was loaded.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	c := *cfg
	c.CandidatePaths = append([]string(nil), cfg.CandidatePaths...)
	return &c
}
