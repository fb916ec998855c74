// Package render draws RenderPlans. Every renderer here is a thin consumer of
// engine.RenderPlan: it reads labels, values and colors from the plan and
// never looks at the dataset or the ChartSpec.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spektr-org/chartkit/engine"
)

// ErrEmptyPlan is returned by image renderers for plans with nothing to draw.
var ErrEmptyPlan = errors.New("plan has no values to draw")

// Format names an output format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatPNG      Format = "png"
	FormatSVG      Format = "svg"
	FormatTerminal Format = "text"
)

// ParseFormat accepts html, png, svg and text (alias: terminal).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "html":
		return FormatHTML, nil
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "text", "terminal":
		return FormatTerminal, nil
	}
	return "", fmt.Errorf("unknown render format %q (must be html, png, svg or text)", s)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatTerminal {
		return ".txt"
	}
	return "." + string(f)
}

func planIsEmpty(plan *engine.RenderPlan) bool {
	return plan == nil || len(plan.Series) == 0 || len(plan.CategoryLabels) == 0
}

// rgb parses "#rgb" or "#rrggbb". ok is false for anything else (named colors).
func rgb(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), true
}
