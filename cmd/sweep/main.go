package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"blue-noise/internal/core"
	"blue-noise/internal/export"
	"blue-noise/internal/noise"
	"blue-noise/internal/spectrum"
)

const lowBandCutoff = 0.3

type job struct {
	method noise.Method
	radius int
	seed   int64
}

func (j job) String() string {
	if j.method == noise.MethodHighPass {
		return fmt.Sprintf("%-11s      seed=%d", j.method, j.seed)
	}
	return fmt.Sprintf("%-11s r=%d seed=%d", j.method, j.radius, j.seed)
}

type result struct {
	job     job
	stats   noise.Stats
	lowBand float64
	elapsed time.Duration
	err     error
}

func main() {
	dims := flag.String("dims", "32x32", "grid extents")
	iterations := flag.Int("iterations", 20000, "optimisation iterations per run")
	seeds := flag.Int("seeds", 4, "seeds per configuration, starting at 1")
	radii := flag.String("radii", "1,2,3", "comma separated kernel radii")
	methods := flag.String("methods", "solid-angle,high-pass", "comma separated methods")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 10, "results to print")
	flag.Parse()

	base := noise.DefaultConfig()
	var err error
	if base.Dims, err = noise.ParseDims(*dims); err != nil {
		slog.Error("bad dims", "error", err)
		os.Exit(2)
	}
	base.Iterations = *iterations
	jobs, err := plan(*seeds, *radii, *methods)
	if err != nil {
		slog.Error("bad sweep", "error", err)
		os.Exit(2)
	}

	fmt.Printf("Sweeping %d runs over %s (%d workers, %d iterations)\n", len(jobs), noise.FormatDims(base.Dims), *workers, *iterations)
	start := time.Now()
	all := sweep(base, jobs, *workers)

	failed := 0
	for _, res := range all {
		if res.err != nil {
			failed++
			slog.Warn("run failed", "run", res.job.String(), "error", res.err)
		}
	}
	fmt.Printf("Completed %d runs in %s (%d failed)\n", len(all), time.Since(start).Round(time.Millisecond), failed)
	fmt.Printf("Best by low-band power ratio (cutoff %.2f):\n", lowBandCutoff)
	for i, res := range all {
		if i >= *top || res.err != nil {
			break
		}
		fmt.Printf("%2d. %s  low=%.4f score=%.2f (from %.2f) accepted=%d in %s\n",
			i+1, res.job, res.lowBand, res.stats.Score, res.stats.InitialScore, res.stats.Accepted, res.elapsed.Round(time.Millisecond))
	}
}

// plan expands the sweep axes into jobs. High-pass ignores the radius, so it
// gets one job per seed.
func plan(seeds int, radii, methods string) ([]job, error) {
	if seeds < 1 {
		return nil, fmt.Errorf("%w: seeds must be >= 1", noise.ErrInvalidConfig)
	}
	var rs []int
	for _, f := range strings.Split(radii, ",") {
		r, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: bad radius %q", noise.ErrInvalidConfig, f)
		}
		rs = append(rs, r)
	}
	var jobs []job
	for _, name := range strings.Split(methods, ",") {
		m, err := noise.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		for seed := int64(1); seed <= int64(seeds); seed++ {
			if m == noise.MethodHighPass {
				jobs = append(jobs, job{method: m, seed: seed})
				continue
			}
			for _, r := range rs {
				jobs = append(jobs, job{method: m, radius: r, seed: seed})
			}
		}
	}
	return jobs, nil
}

// sweep runs every job on a pool of workers and returns the results sorted
// by low-band ratio, failures last.
func sweep(base noise.Config, jobs []job, workers int) []result {
	if workers < 1 {
		workers = 1
	}
	in := make(chan job)
	out := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range in {
				out <- runJob(base, j)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	go func() {
		for _, j := range jobs {
			in <- j
		}
		close(in)
	}()

	all := make([]result, 0, len(jobs))
	for res := range out {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if (all[i].err == nil) != (all[j].err == nil) {
			return all[i].err == nil
		}
		if all[i].lowBand != all[j].lowBand {
			return all[i].lowBand < all[j].lowBand
		}
		return all[i].job.String() < all[j].job.String()
	})
	return all
}

func runJob(base noise.Config, j job) result {
	cfg := base
	cfg.Method = j.method
	cfg.Seed = j.seed
	if j.method == noise.MethodSolidAngle {
		cfg.Radius = j.radius
	}
	res := result{job: j}
	start := time.Now()
	values, st, err := noise.Generate(cfg, core.NewRNG(j.seed), nil)
	res.elapsed = time.Since(start)
	res.stats = st
	if err != nil {
		res.err = err
		return res
	}
	power, err := spectrum.Power(export.Frame{Values: values, Dims: cfg.Dims, Channels: cfg.Channels}, 0)
	if err != nil {
		res.err = err
		return res
	}
	res.lowBand = spectrum.LowBandRatio(power, cfg.Dims, lowBandCutoff)
	return res
}
