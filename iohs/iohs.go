// Package iohs implements the instance and solution I/O formats of §6: the
// plain-text and JSON hypergraph encodings, and the JSON solution writer
// used by cmd/minhs.
package iohs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/natefinch/atomic"
)

// ErrInvalidInput is returned for malformed instance files: a bad header,
// wrong field count, or anything hypergraph.Load itself rejects.
var ErrInvalidInput = fmt.Errorf("iohs: invalid input")

// ErrIO is returned when reading or writing the underlying file fails.
var ErrIO = fmt.Errorf("iohs: io error")

// ReadText parses the "N M" + per-edge "d i_1 … i_d" text format from path.
func ReadText(path string) (*hypergraph.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer f.Close()
	return decodeText(f, path)
}

func decodeText(r io.Reader, name string) (*hypergraph.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: %s: missing header line", ErrInvalidInput, name)
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("%w: %s: header must be \"N M\", got %q", ErrInvalidInput, name, sc.Text())
	}
	numVertices, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad vertex count %q: %v", ErrInvalidInput, name, header[0], err)
	}
	numEdges, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad edge count %q: %v", ErrInvalidInput, name, header[1], err)
	}

	edges := make([][]int, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: %s: expected %d edges, found %d", ErrInvalidInput, name, numEdges, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: %s: edge %d line is empty", ErrInvalidInput, name, i)
		}
		size, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: edge %d: bad size %q: %v", ErrInvalidInput, name, i, fields[0], err)
		}
		if size != len(fields)-1 {
			return nil, fmt.Errorf("%w: %s: edge %d: declared size %d but found %d vertices", ErrInvalidInput, name, i, size, len(fields)-1)
		}
		edge := make([]int, size)
		for j, field := range fields[1:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: edge %d: bad vertex %q: %v", ErrInvalidInput, name, i, field, err)
			}
			edge[j] = v
		}
		edges = append(edges, edge)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, name, err)
	}

	ins, err := hypergraph.Load(numVertices, edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}
	return ins, nil
}

// WriteText renders ins in the "N M" + per-edge text format to path,
// atomically (a crash mid-write never leaves a truncated file behind).
func WriteText(path string, ins *hypergraph.Instance) error {
	var buf strings.Builder
	if err := encodeText(&buf, ins); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(buf.String())); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}

func encodeText(w io.Writer, ins *hypergraph.Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", ins.NumAliveNodes(), ins.NumAliveEdges())
	for _, e := range ins.Edges() {
		nodes := ins.EdgeNodes(e)
		fmt.Fprintf(bw, "%d", len(nodes))
		for _, v := range nodes {
			fmt.Fprintf(bw, " %d", v.Idx())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// jsonInstance is the wire shape for ReadJSON/WriteJSON:
// {"num_nodes": int, "edges": [[int]]}.
type jsonInstance struct {
	NumNodes int     `json:"num_nodes"`
	Edges    [][]int `json:"edges"`
}

// ReadJSON parses the {"num_nodes": int, "edges": [[int]]} format from path.
func ReadJSON(path string) (*hypergraph.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}

	var ji jsonInstance
	if err := json.Unmarshal(data, &ji); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, err)
	}

	ins, err := hypergraph.Load(ji.NumNodes, ji.Edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, err)
	}
	return ins, nil
}

// WriteJSON renders ins as {"num_nodes": int, "edges": [[int]]} to path,
// atomically.
func WriteJSON(path string, ins *hypergraph.Instance) error {
	edges := make([][]int, 0, ins.NumAliveEdges())
	for _, e := range ins.Edges() {
		nodes := ins.EdgeNodes(e)
		edge := make([]int, len(nodes))
		for i, v := range nodes {
			edge[i] = v.Idx()
		}
		edges = append(edges, edge)
	}

	data, err := json.Marshal(jsonInstance{NumNodes: ins.NumAliveNodes(), Edges: edges})
	if err != nil {
		return fmt.Errorf("%w: marshaling instance: %v", ErrInvalidInput, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}

// WriteSolution writes hs as a JSON array of vertex indices to path,
// atomically. Order is not required to be ascending, per §6.
func WriteSolution(path string, hs []hypergraph.NodeIdx) error {
	indices := make([]int, len(hs))
	for i, v := range hs {
		indices[i] = v.Idx()
	}
	data, err := json.Marshal(indices)
	if err != nil {
		return fmt.Errorf("%w: marshaling solution: %v", ErrInvalidInput, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}
