package cli

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"iconkit/internal/imageio"
)

var Version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:     "iconkit",
	Version: Version,
	Short:   "Post-process app icon images",
	Long: "iconkit removes border-connected dark backgrounds from app icons, cleans\n" +
		"antialiased edges, recolors, trims transparent margins and exports PNG/WebP/ICO.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(removeBGCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(recolorCmd)
	rootCmd.AddCommand(trimCmd)
	rootCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
}

// inOut returns the input path and the output path, which defaults to the input.
func inOut(args []string) (string, string) {
	if len(args) > 1 {
		return args[0], args[1]
	}
	return args[0], args[0]
}

func save(path string, img image.Image) error {
	if err := imageio.Save(path, img); err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Printf("Saved: %s (%dx%d)\n", path, b.Dx(), b.Dy())
	return nil
}
