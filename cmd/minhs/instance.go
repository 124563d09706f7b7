package main

import (
	"path/filepath"
	"strings"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/iohs"
)

// loadInstance dispatches to iohs.ReadJSON or iohs.ReadText based on the
// file extension (".json" for JSON, anything else for the plain-text
// format), matching the two wire formats §6 defines.
func loadInstance(path string) (*hypergraph.Instance, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return iohs.ReadJSON(path)
	}
	return iohs.ReadText(path)
}
