package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconkit/internal/config"
	"iconkit/internal/imageio"
	"iconkit/internal/postprocess"
)

var cleanCmd = &cobra.Command{
	Use:   "clean IN [OUT]",
	Short: "Remove semi-transparent light fringe left by antialiasing",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := inOut(args)
		mode, _ := cmd.Flags().GetString("mode")

		img, err := imageio.Load(in)
		if err != nil {
			return err
		}

		var n int
		switch mode {
		case config.EdgeAntialias:
			n = postprocess.CleanEdges(img, postprocess.EdgeAntialias)
		case config.EdgeSoft:
			n = postprocess.CleanEdges(img, postprocess.EdgeSoft)
		case config.EdgeStrict:
			n = postprocess.StripWhite(img, 200, 150)
		default:
			return fmt.Errorf("unknown mode %q (antialias, soft, strict)", mode)
		}
		fmt.Printf("Edge cleanup (%s): %d pixels\n", mode, n)

		return save(out, img)
	},
}

func init() {
	cleanCmd.Flags().String("mode", config.EdgeSoft, "Cleanup rule: antialias, soft or strict")
}
