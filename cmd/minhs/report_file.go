package main

import (
	"bytes"
	"fmt"

	"github.com/minhs-go/minhs/report"
	"github.com/natefinch/atomic"
)

// writeReportFile serializes rep as indented JSON and writes it to path
// atomically, so a crash mid-write never clobbers a prior run's report.
func writeReportFile(path string, rep *report.Report) error {
	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		return fmt.Errorf("minhs: marshaling report: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("minhs: writing report %s: %w", path, err)
	}
	return nil
}
