package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconkit/internal/config"
	"iconkit/internal/floodfill"
	"iconkit/internal/imageio"
	"iconkit/internal/postprocess"
)

var recolorCmd = &cobra.Command{
	Use:   "recolor IN [OUT]",
	Short: "Replace every dark pixel with a solid color",
	Long: "Replaces each pixel whose R, G and B are all below --below with --color.\n" +
		"This is a global replacement unless --connected limits it to the region\n" +
		"reachable from the corners.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := inOut(args)
		hex, _ := cmd.Flags().GetString("color")
		below, _ := cmd.Flags().GetUint8("below")
		connected, _ := cmd.Flags().GetBool("connected")

		c, err := config.ParseHex(hex)
		if err != nil {
			return err
		}
		img, err := imageio.Load(in)
		if err != nil {
			return err
		}

		var n int
		if connected {
			n, err = postprocess.RecolorConnected(img, floodfill.Below(below), floodfill.Corners(img.Bounds()), c)
			if err != nil {
				return err
			}
		} else {
			n = postprocess.Recolor(img, floodfill.Below(below), c)
		}
		fmt.Printf("Recolored: %d pixels -> %s\n", n, hex)

		return save(out, img)
	},
}

func init() {
	recolorCmd.Flags().String("color", "#151826", "Replacement color (#rrggbb)")
	recolorCmd.Flags().Uint8("below", 100, "Pixels with R, G and B all below this are replaced")
	recolorCmd.Flags().Bool("connected", false, "Only replace the region connected to the corners")
}
