package engine

// DefaultPalette is a ten-color palette for callers that do not bring their
// own. Resolve never falls back to it; an empty ChartSpec.Palette is an error.
var DefaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ColorAt returns palette[i mod len(palette)]. Short palettes repeat.
// It panics on an empty palette; Resolve rejects those before calling it.
func ColorAt(palette []string, i int) string {
	return palette[i%len(palette)]
}

func assignColors(palette []string, count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = ColorAt(palette, i)
	}
	return colors
}
