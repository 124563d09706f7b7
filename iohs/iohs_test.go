package iohs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/iohs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle(t *testing.T) *hypergraph.Instance {
	t.Helper()
	ins, err := hypergraph.Load(3, [][]int{{0, 1}, {1, 2}, {0, 2}})
	require.NoError(t, err)
	return ins
}

func TestWriteReadText_RoundTrips(t *testing.T) {
	ins := triangle(t)
	path := filepath.Join(t.TempDir(), "instance.txt")

	require.NoError(t, iohs.WriteText(path, ins))

	got, err := iohs.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, ins.NumAliveNodes(), got.NumAliveNodes())
	assert.Equal(t, ins.NumAliveEdges(), got.NumAliveEdges())
}

func TestReadText_RejectsBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	writeFile(t, path, "not a header\n")

	_, err := iohs.ReadText(path)
	assert.ErrorIs(t, err, iohs.ErrInvalidInput)
}

func TestReadText_RejectsMismatchedEdgeSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	writeFile(t, path, "3 1\n2 0\n") // declares size 2 but only one vertex follows

	_, err := iohs.ReadText(path)
	assert.ErrorIs(t, err, iohs.ErrInvalidInput)
}

func TestReadText_RejectsTooFewEdgeLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	writeFile(t, path, "3 2\n2 0 1\n")

	_, err := iohs.ReadText(path)
	assert.ErrorIs(t, err, iohs.ErrInvalidInput)
}

func TestReadText_MissingFileIsIOError(t *testing.T) {
	_, err := iohs.ReadText(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.ErrorIs(t, err, iohs.ErrIO)
}

func TestWriteReadJSON_RoundTrips(t *testing.T) {
	ins := triangle(t)
	path := filepath.Join(t.TempDir(), "instance.json")

	require.NoError(t, iohs.WriteJSON(path, ins))

	got, err := iohs.ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, ins.NumAliveNodes(), got.NumAliveNodes())
	assert.Equal(t, ins.NumAliveEdges(), got.NumAliveEdges())
}

func TestReadJSON_RejectsMalformedEdges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, path, `{"num_nodes": 2, "edges": [[0, 5]]}`)

	_, err := iohs.ReadJSON(path)
	assert.ErrorIs(t, err, iohs.ErrInvalidInput)
}

func TestWriteSolution_ProducesJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.json")
	hs := []hypergraph.NodeIdx{2, 0}

	require.NoError(t, iohs.WriteSolution(path, hs))

	data := readFile(t, path)
	assert.JSONEq(t, "[2, 0]", string(data))
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
