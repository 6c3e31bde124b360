package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"iconkit/internal/imageio"
	"iconkit/internal/pipeline"
	"iconkit/internal/postprocess"
)

// icoMax is the largest edge written to an .ico output.
const icoMax = 256

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Formats   []string
	Options   pipeline.Options
	Workers   int
	Progress  time.Duration // ticker interval, 0 = quiet
}

// Job is one source icon and the extension-less name its outputs get.
type Job struct {
	Source string
	Name   string
}

// Result holds the outcome of processing one icon.
type Result struct {
	Source  string
	Name    string
	Outputs []string
	Stats   pipeline.Stats
	Success bool
	Error   string
}

// Jobs lists every decodable image under cfg.InputDir, skipping the output directory.
func Jobs(cfg Config) []Job {
	idx := imageio.BuildIndex(cfg.InputDir, cfg.OutputDir)
	paths := idx.Paths()
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = Job{Source: p, Name: idx.Rel(p)}
	}
	return jobs
}

// Run processes all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f icons/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = ProcessOne(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// ProcessOne loads, processes and writes a single icon.
func ProcessOne(cfg Config, job Job) Result {
	res := Result{Source: job.Source, Name: job.Name}

	img, err := imageio.Load(job.Source)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	out, err := pipeline.Run(img, cfg.Options)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Stats = out.Stats

	base := filepath.Join(cfg.OutputDir, job.Name)
	for _, format := range cfg.Formats {
		dst := out.Image
		if format == "ico" {
			b := dst.Bounds()
			if b.Dx() > icoMax || b.Dy() > icoMax {
				dst = postprocess.Resize(dst, icoMax)
			}
		}
		path := base + "." + format
		if err := imageio.Save(path, dst); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Outputs = append(res.Outputs, path)
	}

	if out.Flat != nil {
		path := base + "_ios.png"
		if err := imageio.Save(path, out.Flat); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Outputs = append(res.Outputs, path)
	}

	res.Success = true
	return res
}
