package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
	"github.com/KaramelBytes/edareport-cli/internal/profile"
	"github.com/KaramelBytes/edareport-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	profFormat     string
	profOutputPath string
	profDelimiter  string
	profDecimal    string
	profThousands  string
	profSheet      string
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Print schema, summary statistics and missing values without plotting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := currentConfig()
		f := cmd.Flags()
		if f.Changed("delimiter") {
			c.Delimiter = profDelimiter
		}
		if f.Changed("decimal") {
			c.DecimalSeparator = profDecimal
		}
		if f.Changed("thousands") {
			c.ThousandsSeparator = profThousands
		}
		if f.Changed("sheet") {
			c.Sheet = profSheet
		}
		pc, err := c.PipelineConfig()
		if err != nil {
			return err
		}
		ds, err := dataset.Load(path, pc.Parse)
		if err != nil {
			return err
		}
		p := profile.Build(ds)

		var body []byte
		switch strings.ToLower(strings.TrimSpace(profFormat)) {
		case "", "text":
			var b strings.Builder
			if err := p.WriteText(&b); err != nil {
				return err
			}
			body = []byte(b.String())
		case "markdown", "md":
			body = []byte(p.Markdown())
		case "json":
			body, err = utils.IndentJSON(p)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use text|markdown|json)", profFormat)
		}

		if profOutputPath != "" {
			if err := utils.WriteFileAtomic(profOutputPath, body); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote profile to %s\n", profOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(body)
		return err
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profFormat, "format", "text", "output format: text|markdown|json")
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile")
	profileCmd.Flags().StringVar(&profDelimiter, "delimiter", "", "delimiter: ','|';'|'tab'|'pipe' (auto-detect if omitted)")
	profileCmd.Flags().StringVar(&profDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	profileCmd.Flags().StringVar(&profThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
	profileCmd.Flags().StringVar(&profSheet, "sheet", "", "XLSX: sheet name (first sheet if omitted)")
}
