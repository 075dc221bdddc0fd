package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"hflux/dataset"
	"hflux/plotting"
	"hflux/report"
)

func newRenderCmd() *cobra.Command {
	var (
		outPath string
		dump    bool
	)
	cmd := &cobra.Command{
		Use:   "render <job.yaml|job.toml>",
		Short: "render every figure of a job file into one PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := report.LoadFile(args[0])
			if err != nil {
				return err
			}
			if dump {
				spew.Fdump(cmd.OutOrStdout(), job)
			}
			base := plotting.DefaultOptions()
			base.Progress = cmd.OutOrStdout()
			opts := job.Options(base)
			if outPath != "" {
				opts.PDFPath = outPath
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendering %d figures from %s\n", len(job.Figures), args[0])
			return report.Run(job, plotting.New(opts))
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "PDF path (default: job output or "+plotting.DefaultPDFPath+")")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the parsed job before rendering")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "preview <data> <xcol> <ycol> <output.svg|output.png>",
		Short: "quick look at one column of a data file",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			x, err := tbl.Column(args[1])
			if err != nil {
				return err
			}
			y, err := tbl.Column(args[2])
			if err != nil {
				return err
			}
			p := plotting.New(plotting.Options{Progress: cmd.OutOrStdout()})
			fig, axs := p.Subplots(1, 1)
			defer fig.Close()
			if _, err := p.MakeSinglePlot(axs[0], x, y, args[1], args[2], args[2]+" vs "+args[1], plotting.LineOptions{Format: format, Legend: args[2]}); err != nil {
				return err
			}
			if err := p.SavePreview(args[3], axs[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[3])
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "line format, e.g. \"o--r\"")
	return cmd
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "list the available chart methods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			plotting.New(plotting.DefaultOptions()).ClassAssistant(cmd.OutOrStdout())
		},
	}
}
