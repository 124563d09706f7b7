package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/minhs-go/minhs/report"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.FatalLevel)
	return log
}

func TestRunSolve_WritesSolutionAndReport(t *testing.T) {
	dir := t.TempDir()
	instancePath := filepath.Join(dir, "instance.txt")
	require.NoError(t, os.WriteFile(instancePath, []byte("3 3\n2 0 1\n2 1 2\n2 0 2\n"), 0o644))

	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte("{}"), 0o644))

	solutionPath := filepath.Join(dir, "solution.json")
	reportPath := filepath.Join(dir, "report.json")

	err := runSolve(testLogger(), instancePath, settingsPath, solveOptions{
		solutionPath: solutionPath,
		reportPath:   reportPath,
	})
	require.NoError(t, err)

	var solution []int
	data, err := os.ReadFile(solutionPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &solution))
	assert.Len(t, solution, 2)

	var rep report.Report
	data, err = os.ReadFile(reportPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, 2, rep.Opt)
}

func TestRunSolve_RejectsMissingInstance(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte("{}"), 0o644))

	err := runSolve(testLogger(), filepath.Join(dir, "missing.txt"), settingsPath, solveOptions{})
	assert.Error(t, err)
}

func TestRunILP_ExportsReducedInstance(t *testing.T) {
	dir := t.TempDir()
	instancePath := filepath.Join(dir, "instance.json")
	require.NoError(t, os.WriteFile(instancePath, []byte(`{"num_nodes": 3, "edges": [[0, 1], [1, 2]]}`), 0o644))

	err := runILP(testLogger(), instancePath, ilpOptions{reduced: true})
	require.NoError(t, err)
}

func TestLevelFromEnv_FallsBackToInfoOnUnrecognized(t *testing.T) {
	t.Setenv("MINHS_LOG", "not-a-level")
	level := levelFromEnv(testLogger())
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestLevelFromEnv_ParsesRecognizedLevel(t *testing.T) {
	t.Setenv("MINHS_LOG", "debug")
	level := levelFromEnv(testLogger())
	assert.Equal(t, logrus.DebugLevel, level)
}
