// Package export renders recorded frames to standalone SVG files.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/roboviz/internal/render"
	"github.com/san-kum/roboviz/internal/world"
)

// CanvasToSVG converts a braille canvas to SVG, one dot per lit
// sub-pixel, colored by the cell that owns it.
func CanvasToSVG(canvas *render.Canvas, scale float64, background string) string {
	if canvas == nil {
		return ""
	}
	if background == "" {
		background = "#0f172a"
	}

	width := float64(canvas.Width) * scale * 2  // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			fill := canvas.CellColor(x, y)
			if fill == "" {
				fill = "#e2e8f0"
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameToSVG renders one simulation state through the pipeline and
// returns the SVG document.
func FrameToSVG(st world.SimulationState, cols, rows int, scale float64) string {
	p := render.NewPipeline(cols, rows)
	p.Frame(st)

	background := ""
	if st.Visual != nil {
		background = st.Visual.Background
	}
	return CanvasToSVG(p.Canvas(), scale, background)
}

// WriteFrameSVG renders a state to an SVG file.
func WriteFrameSVG(path string, st world.SimulationState, cols, rows int, scale float64) error {
	return os.WriteFile(path, []byte(FrameToSVG(st, cols, rows, scale)), 0644)
}
