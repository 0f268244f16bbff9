package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/edareport-cli/internal/config"
	"github.com/KaramelBytes/edareport-cli/internal/dataset"
	"github.com/spf13/cobra"
)

var locateData []string

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show which candidate dataset path would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := currentConfig().CandidatePaths
		if cmd.Flags().Changed("data") && len(locateData) > 0 {
			src = locateData
		}
		paths := cfgpkg.ExpandPaths(src)
		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintln(out, "(no candidate paths)")
		}
		for _, p := range dataset.CheckCandidates(paths) {
			state := "missing"
			if p.Exists {
				state = "found"
			}
			fmt.Fprintf(out, "- %s (%s)\n", p.Path, state)
		}
		chosen, err := dataset.Locate(paths)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Using %s\n", chosen)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
	locateCmd.Flags().StringArrayVar(&locateData, "data", nil, "dataset path to try (repeatable, replaces candidate_paths)")
}
