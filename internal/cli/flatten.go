package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconkit/internal/config"
	"iconkit/internal/imageio"
	"iconkit/internal/postprocess"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten IN OUT",
	Short: "Composite the icon over a solid color (for iOS)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hex, _ := cmd.Flags().GetString("color")
		c, err := config.ParseHex(hex)
		if err != nil {
			return err
		}

		img, err := imageio.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Background: %s\n", hex)
		return save(args[1], postprocess.Flatten(img, c))
	},
}

func init() {
	flattenCmd.Flags().String("color", "#5A6978", "Background color (#rrggbb)")
}
