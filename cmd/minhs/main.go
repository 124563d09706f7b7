// Command minhs is the CLI surface for the exact minimum hitting set
// solver: a `solve` subcommand that runs the branch-and-bound search, and
// an `ilp` subcommand that exports (optionally pre-reduced) instances as a
// set-cover integer program for comparison against an external ILP solver.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.New()
	log.SetLevel(levelFromEnv(log))

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("minhs: internal error")
			os.Exit(2)
		}
	}()

	root := &cobra.Command{
		Use:           "minhs",
		Short:         "exact minimum hitting set solver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(solveCmd(log), ilpCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// levelFromEnv reads MINHS_LOG, falling back to info on an empty or
// unrecognized value (with a warning logged for the latter).
func levelFromEnv(log *logrus.Logger) logrus.Level {
	raw := os.Getenv("MINHS_LOG")
	if raw == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		log.Warnf("minhs: unrecognized MINHS_LOG=%q, defaulting to info", raw)
		return logrus.InfoLevel
	}
	return level
}
