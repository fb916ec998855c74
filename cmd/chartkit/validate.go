package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every chart resolves; exit non-zero otherwise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, panels, err := loadPanels(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := 0
			for _, p := range panels {
				if p.OK() {
					fmt.Fprintf(w, "✅ %-16s %s (%s, %d series, %d points)\n",
						p.ID, p.Title, p.Plan.Kind, len(p.Plan.Series), len(p.Plan.CategoryLabels))
					continue
				}
				failed++
				fmt.Fprintf(w, "❌ %-16s %s\n", p.ID, p.Message)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d charts failed validation", failed, len(panels))
			}
			return nil
		},
	}
}
