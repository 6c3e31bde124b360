package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"iconkit/internal/batch"
	"iconkit/internal/config"
	"iconkit/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [DIR]",
	Short: "Run the full icon recipe over every image in a directory",
	Long: "Removes the corner-connected dark background, optionally cleans edges and\n" +
		"specks, trims, resizes and writes each configured format to the output\n" +
		"directory along with a manifest. Settings come from --config, ICONKIT_*\n" +
		"environment variables and flags, in increasing priority.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}
		opts, err := pipeline.FromConfig(cfg)
		if err != nil {
			return err
		}
		testN, _ := cmd.Flags().GetInt("test")

		bcfg := batch.Config{
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Formats:   cfg.Formats,
			Options:   opts,
			Workers:   cfg.Workers,
			Progress:  2 * time.Second,
		}

		jobs := batch.Jobs(bcfg)
		if testN > 0 && testN < len(jobs) {
			jobs = jobs[:testN]
		}
		if len(jobs) == 0 {
			fmt.Println("No icons to process.")
			return nil
		}

		fmt.Printf("Icons: %d, Workers: %d\n", len(jobs), cfg.Workers)
		fmt.Printf("Output: %s (%v)\n", cfg.OutputDir, cfg.Formats)
		fmt.Println("------------------------------------------------------------")

		start := time.Now()
		results := batch.Run(bcfg, jobs)
		elapsed := time.Since(start)

		fmt.Println("------------------------------------------------------------")
		fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

		failed := printSummary(results)

		manifestPath := filepath.Join(cfg.OutputDir, cfg.Manifest)
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d icons failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	addConfigFlags(processCmd)
	processCmd.Flags().Int("test", 0, "Process only the first N icons")
}

// addConfigFlags registers the flags that map onto config.Flags.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("config", "c", "", "Config file (json, yaml or toml)")
	f.StringP("output", "o", "", "Output directory (default: DIR/processed)")
	f.Int("threshold", 0, "Max R/G/B of a background pixel (default: 30)")
	f.String("edge", "", "Edge cleanup: none, antialias, soft or strict")
	f.StringSlice("formats", nil, "Output formats: png, webp, ico, tga")
	f.Int("size", 0, "Resize to a square of this edge after trimming")
	f.String("flatten", "", "Also write an opaque _ios.png over this color")
	f.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	f.Int("trim-alpha", 10, "Alpha above which a pixel counts as visible")
	f.Bool("no-trim", false, "Keep the original canvas size")
}

func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")

	var cfg config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	var flags config.Flags
	if len(args) > 0 {
		flags.InputDir = args[0]
	}
	flags.OutputDir, _ = f.GetString("output")
	flags.Threshold, _ = f.GetInt("threshold")
	flags.EdgeClean, _ = f.GetString("edge")
	flags.Formats, _ = f.GetStringSlice("formats")
	flags.Size, _ = f.GetInt("size")
	flags.FlattenColor, _ = f.GetString("flatten")
	flags.Workers, _ = f.GetInt("workers")
	flags.NoTrim, _ = f.GetBool("no-trim")
	if f.Changed("trim-alpha") {
		v, _ := f.GetInt("trim-alpha")
		flags.TrimAlpha = &v
	}

	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if fi, err := os.Stat(cfg.InputDir); err != nil || !fi.IsDir() {
		return config.Config{}, fmt.Errorf("input directory %s not found", cfg.InputDir)
	}
	return cfg, nil
}

// printSummary prints per-run totals and up to 20 failures, returning the failure count.
func printSummary(results []batch.Result) int {
	success, failed, removed := 0, 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			removed += r.Stats.Removed
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Processed: %d/%d (%d background pixels removed)\n", success, len(results), removed)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}
	return failed
}
