package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"blue-noise/internal/core"
	"blue-noise/internal/export"
	"blue-noise/internal/noise"
	"blue-noise/internal/spectrum"

	"github.com/joho/godotenv"
)

const envPrefix = "BLUENOISE_"

// configKeys are the noise.FromMap keys settable from the environment or flags.
var configKeys = []string{"dims", "channels", "radius", "iterations", "threshold", "method", "passes", "seed"}

type outputs struct {
	path       string
	format     string
	name       string
	triangular bool
	spectrum   string
	history    string
}

func main() {
	fs := flag.NewFlagSet("bluenoise", flag.ExitOnError)
	envFile := fs.String("env", ".env", "dotenv file with BLUENOISE_* defaults")
	verbose := fs.Bool("v", false, "debug logging")
	var out outputs
	fs.StringVar(&out.path, "out", "", "output file (default derived from dims and format)")
	fs.StringVar(&out.format, "format", string(export.FormatPNG), "output format: "+formatList())
	fs.StringVar(&out.name, "name", "blueNoise", "identifier for c and glsl output")
	fs.BoolVar(&out.triangular, "tri", false, "remap raster output to a triangular distribution")
	fs.StringVar(&out.spectrum, "spectrum", "", "write a radial power spectrum plot PNG here")
	fs.StringVar(&out.history, "history", "", "write a score history plot PNG here")
	def := noise.DefaultConfig()
	fs.String("dims", noise.FormatDims(def.Dims), "grid extents, e.g. 64x64x4")
	fs.Int("channels", def.Channels, "values per grid item")
	fs.Int("radius", def.Radius, "energy kernel radius")
	fs.Int("iterations", def.Iterations, "optimisation iterations")
	fs.Int("threshold", def.IncrementalThreshold, "element count from which incremental rescoring is used")
	fs.String("method", def.Method.String(), "solid-angle or high-pass")
	fs.Int("passes", def.Passes, "high-pass filter passes")
	fs.Int64("seed", def.Seed, "random seed")
	fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read env file", "path", *envFile, "error", err)
	}
	cfg, err := noise.FromMap(settings(os.Environ(), fs))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("bad configuration", "error", err)
		os.Exit(2)
	}
	if err := run(cfg, out); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

// settings merges BLUENOISE_* environment entries with explicitly set flags,
// flags taking precedence.
func settings(environ []string, fs *flag.FlagSet) map[string]string {
	m := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, envPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, envPrefix))
		for _, known := range configKeys {
			if key == known {
				m[key] = v
			}
		}
	}
	fs.Visit(func(f *flag.Flag) {
		for _, known := range configKeys {
			if f.Name == known {
				m[known] = f.Value.String()
			}
		}
	})
	return m
}

func formatList() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// resolveOutput checks that the requested format can hold the pattern cfg
// describes and fills in the default output path.
func resolveOutput(cfg noise.Config, out outputs) (export.Format, outputs, error) {
	format, err := export.ParseFormat(out.format)
	if err != nil {
		return "", out, err
	}
	if err := export.Check(format, cfg.Dims, cfg.Channels); err != nil {
		return "", out, err
	}
	if out.path == "" {
		out.path = fmt.Sprintf("bluenoise_%s_%dch%s", noise.FormatDims(cfg.Dims), cfg.Channels, format.Extension())
	}
	return format, out, nil
}

func run(cfg noise.Config, out outputs) error {
	format, out, err := resolveOutput(cfg, out)
	if err != nil {
		return err
	}

	slog.Info("generating", "method", cfg.Method, "dims", noise.FormatDims(cfg.Dims),
		"channels", cfg.Channels, "radius", cfg.Radius, "iterations", cfg.Iterations, "seed", cfg.Seed)

	src := core.NewRNG(cfg.Seed)
	p, err := noise.InitialPattern(cfg, src)
	if err != nil {
		return err
	}
	initial := p.Snapshot()

	budget := cfg.Iterations
	if cfg.Method == noise.MethodHighPass {
		budget = cfg.Passes
	}
	progress := core.NewProgress(budget)
	var history spectrum.Series
	history.Name = "score"
	observe := func(st noise.Stats) {
		if !progress.Due(st.Iteration) {
			return
		}
		history.X = append(history.X, float64(st.Iteration))
		history.Y = append(history.Y, st.Score)
		slog.Info("progress",
			"pct", fmt.Sprintf("%.0f%%", 100*progress.Fraction(st.Iteration)),
			"iteration", st.Iteration,
			"score", st.Score,
			"accepted", st.Accepted,
			"eta", progress.ETA(st.Iteration).Round(time.Second))
	}

	final, st, err := noise.Optimize(initial, cfg, src, observe)
	if err != nil {
		return err
	}
	slog.Info("done", "strategy", st.Strategy, "initial_score", st.InitialScore, "score", st.Score,
		"accepted", st.Accepted, "elapsed", progress.Elapsed().Round(time.Millisecond))

	frame := export.Frame{Values: final, Dims: cfg.Dims, Channels: cfg.Channels}
	if err := writeFile(out.path, func(w *bufio.Writer) error {
		return export.Write(w, format, frame, export.Options{Name: out.name, Triangular: out.triangular})
	}); err != nil {
		return err
	}
	slog.Info("wrote pattern", "path", out.path, "format", format)

	if out.spectrum != "" {
		white := export.Frame{Values: initial, Dims: cfg.Dims, Channels: cfg.Channels}
		if err := writeSpectrum(out.spectrum, white, frame); err != nil {
			return err
		}
		slog.Info("wrote spectrum plot", "path", out.spectrum)
	}
	if out.history != "" && len(history.Y) > 0 {
		p, err := spectrum.LinePlot("Score history", "iteration", "score", history)
		if err != nil {
			return err
		}
		if err := writeFile(out.history, func(w *bufio.Writer) error { return spectrum.WritePNG(w, p) }); err != nil {
			return err
		}
		slog.Info("wrote score history", "path", out.history)
	}
	return nil
}

const spectrumBins = 64

func writeSpectrum(path string, white, blue export.Frame) error {
	series := make([]spectrum.Series, 0, 2)
	for _, f := range []struct {
		name  string
		frame export.Frame
	}{{"initial", white}, {"final", blue}} {
		power, err := spectrum.Power(f.frame, 0)
		if err != nil {
			return err
		}
		profile := spectrum.Radial(power, f.frame.Dims, spectrumBins)
		xs := make([]float64, len(profile))
		for i := range xs {
			xs[i] = float64(i) / float64(spectrumBins-1)
		}
		series = append(series, spectrum.Series{Name: f.name, X: xs, Y: profile})
		slog.Debug("low band ratio", "pattern", f.name, "ratio", spectrum.LowBandRatio(power, f.frame.Dims, 0.3))
	}
	p, err := spectrum.LinePlot("Radial power spectrum", "frequency", "power", series...)
	if err != nil {
		return err
	}
	return writeFile(path, func(w *bufio.Writer) error { return spectrum.WritePNG(w, p) })
}

func writeFile(path string, fill func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
