package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	algophase "github.com/cwbudde/algo-phase"
	"github.com/cwbudde/algo-phase/internal/fieldio"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestParseDims(t *testing.T) {
	t.Parallel()

	d, err := parseDims("8, 4,4,16")
	require.NoError(t, err)
	assert.Equal(t, algophase.Dims{8, 4, 4, 16}, d)

	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5", "1,2,x,4"} {
		_, err := parseDims(bad)
		assert.ErrorIs(t, err, errBadDims, bad)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestMomentaCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, "momenta", "--mom2-max", "1", "--indexed")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "0: 0 0 -1", lines[0])
	assert.Equal(t, "3: 0 0 0", lines[3])
	assert.Equal(t, "6: 0 0 1", lines[6])

	_, err = run(t, "momenta", "--mom2-max", "-1")
	assert.ErrorIs(t, err, algophase.ErrDomain)
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phasecache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mom2-max: 2\nmom2-min: 1\n"), 0o600))

	t.Setenv("PHASECACHE_MOM2_MIN", "2")

	out, err := run(t, "momenta", "--config", path, "--indexed")
	require.NoError(t, err)
	// |p|² == 2 only: twelve momenta.
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 12)

	out, err = run(t, "momenta", "--config", path, "--indexed", "--mom2-min", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 18)
}

func TestBuildAndInspect(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rank1.aphs")

	_, err := run(t, "build",
		"--lattice", "8,4,4,4",
		"--grid", "2,1,1,1",
		"--rank", "1",
		"--backend", "cpu",
		"--mom2-max", "1",
		"--codec", "lz4",
		"--out", path,
	)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	stack, codec, err := fieldio.Read(f)
	require.NoError(t, err)
	assert.Equal(t, fieldio.CodecLZ4, codec)
	assert.Equal(t, 7, stack.Len())
	assert.Equal(t, algophase.CheckerboardShape{T: 4, Z: 4, Y: 4, XHalf: 2}, stack.Shape)

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "codec:   lz4")
	assert.Contains(t, out, "momenta: 7")

	out, err = run(t, "build", "--lattice", "4,4,4,4", "--backend", "cpu", "--mom2-max", "1")
	require.NoError(t, err)
	assert.Equal(t, "rank 0: 7 momenta over (2,4,4,4,2) on cpu\n", out)
}

func TestBench(t *testing.T) {
	t.Parallel()

	out, err := run(t, "bench", "--lattice", "4,4,4,4", "--mom2-max", "1", "--iters", "1", "--warmup", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "cpu")
	assert.Contains(t, out, "parallel")
}
