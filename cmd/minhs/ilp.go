package main

import (
	"os"

	"github.com/minhs-go/minhs/reduce"
	"github.com/minhs-go/minhs/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type ilpOptions struct {
	reduced    bool
	reportPath string
	json       bool
}

func ilpCmd(log *logrus.Logger) *cobra.Command {
	var opts ilpOptions
	cmd := &cobra.Command{
		Use:   "ilp <hypergraph>",
		Short: "export the instance as a set-cover ILP in CPLEX LP format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runILP(log, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.reduced, "reduced", false, "apply domination reductions before export")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "write reduction statistics to this file as JSON")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the reduction statistics to stderr as JSON")
	return cmd
}

func runILP(log *logrus.Logger, instancePath string, opts ilpOptions) error {
	ins, err := loadInstance(instancePath)
	if err != nil {
		log.WithField("phase", "load").Error(err)
		return err
	}

	rep := &report.Report{FileName: instancePath}
	if opts.reduced {
		reducedNodes, reducedEdges := reduce.ReduceForILP(ins)
		rep.Reductions.VertexDominationsVerticesFound = reducedNodes
		rep.Reductions.EdgeDominationsEdgesFound = reducedEdges
		log.WithFields(logrus.Fields{
			"reduced_nodes": reducedNodes,
			"reduced_edges": reducedEdges,
		}).Info("ilp reduction complete")
	}

	if err := ins.ExportILP(os.Stdout); err != nil {
		log.WithField("phase", "report").Error(err)
		return err
	}

	if opts.reportPath != "" {
		if err := writeReportFile(opts.reportPath, rep); err != nil {
			log.WithField("phase", "report").Error(err)
			return err
		}
	}
	if opts.json {
		// The LP program itself goes to stdout; statistics go to stderr so
		// the two streams stay independently pipeable.
		return rep.WriteJSON(os.Stderr)
	}
	return nil
}
