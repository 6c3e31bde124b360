package cli

import (
	"os"

	"github.com/spf13/cobra"

	"iconkit/internal/analyze"
	"iconkit/internal/imageio"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze IN...",
	Short: "Print alpha distribution, channel statistics and sample pixels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		for _, in := range args {
			img, err := imageio.Load(in)
			if err != nil {
				return err
			}
			r := analyze.Analyze(img)
			r.Path = in
			if err := r.Write(os.Stdout, format); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
}
