package cli

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"iconkit/internal/floodfill"
	"iconkit/internal/imageio"
	"iconkit/internal/postprocess"
)

var removeBGCmd = &cobra.Command{
	Use:   "removebg IN [OUT]",
	Short: "Make the dark background connected to the seeds transparent",
	Long: "Flood-fills from the four corners (or --seed points) through pixels whose\n" +
		"R, G and B are all <= --threshold and sets their alpha to 0. Dark pixels\n" +
		"enclosed by artwork are kept. OUT defaults to IN.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := inOut(args)
		threshold, _ := cmd.Flags().GetUint8("threshold")
		seedArgs, _ := cmd.Flags().GetStringArray("seed")
		trim, _ := cmd.Flags().GetBool("trim")
		trimAlpha, _ := cmd.Flags().GetUint8("trim-alpha")

		img, err := imageio.Load(in)
		if err != nil {
			return err
		}

		seeds := floodfill.Corners(img.Bounds())
		if len(seedArgs) > 0 {
			if seeds, err = parseSeeds(seedArgs); err != nil {
				return err
			}
		}

		before := img.Bounds().Size()
		removed, err := floodfill.RemoveBackground(img, floodfill.DarkRGB(threshold), seeds)
		if err != nil {
			return err
		}
		fmt.Printf("Removed background: %d pixels\n", removed)

		result := img
		if trim {
			var box image.Rectangle
			var ok bool
			result, box, ok = postprocess.Trim(img, trimAlpha)
			if ok {
				fmt.Printf("Trimmed: %dx%d -> %dx%d (crop %v)\n", before.X, before.Y, box.Dx(), box.Dy(), box)
			} else {
				fmt.Println("Trim skipped: no visible pixels")
			}
		}

		return save(out, result)
	},
}

func init() {
	removeBGCmd.Flags().Uint8("threshold", 30, "Max R/G/B of a background pixel")
	removeBGCmd.Flags().StringArray("seed", nil, "Seed point x,y (repeatable, default: four corners)")
	removeBGCmd.Flags().Bool("trim", false, "Trim to visible pixels afterwards")
	removeBGCmd.Flags().Uint8("trim-alpha", 10, "Alpha above which a pixel counts as visible")
}

func parseSeeds(args []string) ([]image.Point, error) {
	pts := make([]image.Point, 0, len(args))
	for _, a := range args {
		xs, ys, ok := strings.Cut(a, ",")
		if !ok {
			return nil, fmt.Errorf("seed %q: want x,y", a)
		}
		x, errX := strconv.Atoi(strings.TrimSpace(xs))
		y, errY := strconv.Atoi(strings.TrimSpace(ys))
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("seed %q: want integer x,y", a)
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts, nil
}
