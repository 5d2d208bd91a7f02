package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"blue-noise/internal/export"
	"blue-noise/internal/noise"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFlagsOverrideEnvironment(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("dims", "8x8", "")
	fs.Int("radius", 1, "")
	fs.Int("seed", 1, "")
	require.NoError(t, fs.Parse([]string{"-radius", "2"}))

	got := settings([]string{
		"BLUENOISE_DIMS=16x16",
		"BLUENOISE_RADIUS=5",
		"BLUENOISE_UNKNOWN=1",
		"HOME=/root",
	}, fs)
	assert.Equal(t, map[string]string{"dims": "16x16", "radius": "2"}, got)

	cfg, err := noise.FromMap(got)
	require.NoError(t, err)
	assert.Equal(t, []int{16, 16}, cfg.Dims)
	assert.Equal(t, 2, cfg.Radius)
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := noise.DefaultConfig()
	cfg.Dims = []int{8, 8}
	cfg.Radius = 1
	cfg.Iterations = 200
	out := outputs{
		path:     filepath.Join(dir, "noise.c"),
		format:   "c",
		name:     "tex",
		spectrum: filepath.Join(dir, "spectrum.png"),
		history:  filepath.Join(dir, "history.png"),
	}
	require.NoError(t, run(cfg, out))
	for _, p := range []string{out.path, out.spectrum, out.history} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	cfg := noise.DefaultConfig()
	cfg.Dims = []int{4, 4}
	cfg.Radius = 1
	assert.Error(t, run(cfg, outputs{format: "tiff"}))
}

func TestResolveOutputDefaultPath(t *testing.T) {
	cfg := noise.DefaultConfig()
	format, out, err := resolveOutput(cfg, outputs{format: "png"})
	require.NoError(t, err)
	assert.Equal(t, export.FormatPNG, format)
	assert.Equal(t, "bluenoise_128x128_1ch.png", out.path)

	cfg.Dims = []int{8, 8, 4}
	cfg.Channels = 2
	_, out, err = resolveOutput(cfg, outputs{format: "c"})
	require.NoError(t, err)
	assert.Equal(t, "bluenoise_8x8x4_2ch.h", out.path)

	_, out, err = resolveOutput(cfg, outputs{format: "c", path: "mine.h"})
	require.NoError(t, err)
	assert.Equal(t, "mine.h", out.path)
}

func TestRunRejectsUnsupportedShapeBeforeGenerating(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		dims     []int
		channels int
		format   string
	}{
		{[]int{8, 8}, 4, "png"},
		{[]int{8, 8, 4}, 1, "bmp"},
		{[]int{8, 8}, 5, "glsl"},
	} {
		cfg := noise.DefaultConfig()
		cfg.Dims = tc.dims
		cfg.Channels = tc.channels
		cfg.Radius = 1
		// A budget this large would not finish if generation started.
		cfg.Iterations = 1 << 40
		path := filepath.Join(dir, "out."+tc.format)
		err := run(cfg, outputs{format: tc.format, path: path})
		assert.ErrorIs(t, err, export.ErrUnsupported, "%v x%d as %s", tc.dims, tc.channels, tc.format)
		assert.NoFileExists(t, path)
	}
}
