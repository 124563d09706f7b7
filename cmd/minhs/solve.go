package main

import (
	"fmt"
	"os"

	"github.com/minhs-go/minhs/iohs"
	"github.com/minhs-go/minhs/report"
	"github.com/minhs-go/minhs/solve"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type solveOptions struct {
	solutionPath string
	reportPath   string
	json         bool
}

func solveCmd(log *logrus.Logger) *cobra.Command {
	var opts solveOptions
	cmd := &cobra.Command{
		Use:   "solve <hypergraph> <settings>",
		Short: "compute an exact minimum hitting set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(log, args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVar(&opts.solutionPath, "solution", "", "write the hitting set to this file as a JSON array")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "write run statistics to this file as JSON")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report to stdout as JSON instead of a summary line")
	return cmd
}

func runSolve(log *logrus.Logger, instancePath, settingsPath string, opts solveOptions) error {
	ins, err := loadInstance(instancePath)
	if err != nil {
		log.WithField("phase", "load").Error(err)
		return err
	}

	settings, err := report.LoadSettings(settingsPath)
	if err != nil {
		log.WithField("phase", "load").Error(err)
		return err
	}

	rep := &report.Report{FileName: instancePath, Settings: settings}

	log.WithFields(logrus.Fields{
		"nodes": ins.NumAliveNodes(),
		"edges": ins.NumAliveEdges(),
	}).Info("starting solve")

	hs, err := solve.Solve(ins, settings, rep)
	if err != nil {
		log.WithField("phase", "solve").Error(err)
		return err
	}

	log.WithFields(logrus.Fields{
		"opt":             rep.Opt,
		"branching_steps": rep.BranchingSteps,
	}).Info("solve complete")

	if opts.solutionPath != "" {
		if err := iohs.WriteSolution(opts.solutionPath, hs); err != nil {
			log.WithField("phase", "report").Error(err)
			return err
		}
	}
	if opts.reportPath != "" {
		if err := writeReportFile(opts.reportPath, rep); err != nil {
			log.WithField("phase", "report").Error(err)
			return err
		}
	}

	if opts.json {
		return rep.WriteJSON(os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "opt=%d branching_steps=%d\n", rep.Opt, rep.BranchingSteps)
	return nil
}
