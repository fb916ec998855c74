package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/dashboard"
)

// ============================================================================
// CHARTKIT CLI — Declarative dashboards from the command line
// ============================================================================

const version = "0.3.0"

type rootOptions struct {
	dashboardPath string
	charts        []string
	outPath       string
	quiet         bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chartkit",
		Short: "Resolve and render declarative chart dashboards",
		Long: `chartkit reads a dashboard file (datasets + chart specs), resolves every
chart into a render plan and draws it as HTML, PNG/SVG or terminal text.

Without --dashboard the built-in sample (Blueprint Overview) is used.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.quiet {
				log.SetOutput(io.Discard)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.dashboardPath, "dashboard", "d", "", "Dashboard YAML file (default: built-in sample)")
	pf.StringSliceVarP(&opts.charts, "chart", "c", nil, "Only these chart ids (repeatable)")
	pf.StringVarP(&opts.outPath, "out", "o", "", "Write output to this file (or directory for png/svg)")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress log output")

	root.AddCommand(
		newResolveCmd(opts),
		newRenderCmd(opts),
		newValidateCmd(opts),
		newSampleCmd(opts),
	)
	return root
}

// loadPanels reads the dashboard and resolves the selected charts.
func loadPanels(ctx context.Context, opts *rootOptions) (*dashboard.Document, []dashboard.Panel, error) {
	var (
		doc *dashboard.Document
		err error
	)
	if opts.dashboardPath == "" {
		doc, err = dashboard.Sample()
	} else {
		doc, err = dashboard.LoadFile(opts.dashboardPath)
	}
	if err != nil {
		return nil, nil, err
	}
	log.Printf("📋 Loaded dashboard: %s (%d datasets, %d charts)", doc.Title, len(doc.Datasets), len(doc.Charts))

	panels, err := dashboard.Build(ctx, doc, dashboard.WithCharts(opts.charts...))
	if err != nil {
		return nil, nil, err
	}
	return doc, panels, nil
}

// openOutput returns stdout or the --out file. The caller must call close.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func newSampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample dashboard YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, closeOut, err := openOutput(cmd, opts.outPath)
			if err != nil {
				return err
			}
			if _, err := w.Write(dashboard.SampleYAML()); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
}
