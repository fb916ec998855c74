package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/dashboard"
	"github.com/spektr-org/chartkit/render"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		format        string
		width, height int
		theme         string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the dashboard as HTML, PNG, SVG or terminal text",
		Example: `  chartkit render --format html -o overview.html
  chartkit render --format png -o charts/
  chartkit render --format text -c inventory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			ropts := []render.Option{render.WithSize(width, height), render.WithTheme(theme)}

			doc, panels, err := loadPanels(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if f == render.FormatPNG || f == render.FormatSVG {
				return renderImages(panels, f, opts.outPath, ropts)
			}

			w, closeOut, err := openOutput(cmd, opts.outPath)
			if err != nil {
				return err
			}
			if f == render.FormatHTML {
				err = render.HTML(w, doc.Title, panels, ropts...)
			} else {
				err = render.Terminal(w, doc.Title, panels, ropts...)
			}
			if err != nil {
				closeOut()
				return err
			}
			if opts.outPath != "" {
				log.Printf("🖼️  %s written to %s", f, opts.outPath)
			}
			return closeOut()
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&format, "format", "f", "text", "Output format: html, png, svg, text")
	fl.IntVar(&width, "width", 0, "Chart width (pixels, or columns for text)")
	fl.IntVar(&height, "height", 0, "Chart height (pixels, or rows for text)")
	fl.StringVar(&theme, "theme", "", "go-echarts theme for html output")
	return cmd
}

// renderImages writes one file per resolved panel. out is a directory, or a
// file path when exactly one panel is selected.
func renderImages(panels []dashboard.Panel, f render.Format, out string, ropts []render.Option) error {
	if out == "" {
		return errors.New("--out is required for image formats")
	}

	single := len(panels) == 1 && filepath.Ext(out) == f.Extension()
	if !single {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var failed []string
	for _, p := range panels {
		if !p.OK() {
			failed = append(failed, p.ID)
			continue
		}
		path := out
		if !single {
			path = filepath.Join(out, p.ID+f.Extension())
		}
		if err := writeImage(path, p, f, ropts); err != nil {
			return err
		}
		log.Printf("🖼️  %s → %s", p.ID, path)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d panel(s) not drawn: %v", len(failed), failed)
	}
	return nil
}

func writeImage(path string, p dashboard.Panel, f render.Format, ropts []render.Option) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render.Image(file, p.Plan, f, ropts...); err != nil {
		file.Close()
		return fmt.Errorf("panel %q: %w", p.ID, err)
	}
	return file.Close()
}
