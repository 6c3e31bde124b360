package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconkit/internal/imageio"
	"iconkit/internal/postprocess"
)

var trimCmd = &cobra.Command{
	Use:   "trim IN [OUT]",
	Short: "Crop transparent margins around the icon",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := inOut(args)
		alpha, _ := cmd.Flags().GetUint8("alpha")

		img, err := imageio.Load(in)
		if err != nil {
			return err
		}

		trimmed, box, ok := postprocess.Trim(img, alpha)
		if !ok {
			return fmt.Errorf("no pixels with alpha > %d in %s", alpha, in)
		}
		b := img.Bounds()
		fmt.Printf("Trimmed: %dx%d -> %dx%d\n", b.Dx(), b.Dy(), box.Dx(), box.Dy())
		fmt.Printf("  Crop: (%d, %d, %d, %d)\n", box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)

		return save(out, trimmed)
	},
}

func init() {
	trimCmd.Flags().Uint8("alpha", 10, "Alpha above which a pixel counts as visible (0 = any)")
}
