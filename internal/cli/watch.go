package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"iconkit/internal/batch"
	"iconkit/internal/pipeline"
	"iconkit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [DIR]",
	Short: "Reprocess icons whenever they are created or rewritten",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}
		opts, err := pipeline.FromConfig(cfg)
		if err != nil {
			return err
		}

		bcfg := batch.Config{
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Formats:   cfg.Formats,
			Options:   opts,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := &watch.Watcher{
			Dir:  cfg.InputDir,
			Skip: cfg.OutputDir,
			OnChange: func(path string) {
				rel, err := filepath.Rel(cfg.InputDir, path)
				if err != nil {
					rel = filepath.Base(path)
				}
				name := rel[:len(rel)-len(filepath.Ext(rel))]
				r := batch.ProcessOne(bcfg, batch.Job{Source: path, Name: name})
				if !r.Success {
					fmt.Fprintf(os.Stderr, "ERR %s: %s\n", rel, r.Error)
					return
				}
				fmt.Printf("OK  %s: removed %d, %dx%d -> %dx%d\n", rel, r.Stats.Removed,
					r.Stats.Before.X, r.Stats.Before.Y, r.Stats.After.X, r.Stats.After.Y)
			},
		}

		fmt.Printf("Watching %s -> %s (Ctrl-C to stop)\n", cfg.InputDir, cfg.OutputDir)
		return w.Run(ctx)
	},
}

func init() {
	addConfigFlags(watchCmd)
}
