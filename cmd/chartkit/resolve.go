package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve charts into render plans and print them",
		Example: `  chartkit resolve --format pretty
  chartkit resolve -d dash.yaml -c revenue --format csv -o revenue.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			encode, ok := encoders[format]
			if !ok {
				return fmt.Errorf("unknown format %q (must be json, pretty, yaml, csv or dump)", format)
			}

			doc, panels, err := loadPanels(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd, opts.outPath)
			if err != nil {
				return err
			}
			if err := encode(w, output{Title: doc.Title, Panels: panels}); err != nil {
				closeOut()
				return err
			}
			if opts.outPath != "" {
				log.Printf("📄 Plans written to %s", opts.outPath)
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "pretty", "Output format: json, pretty, yaml, csv, dump")
	return cmd
}
