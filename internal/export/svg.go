// Package export renders simulation frames as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	background = "#0a0a0a"
	wallColor  = "#444466"
	bodyColor  = "#00ccff"
	trailColor = "#00ff88"
)

func header(sb *strings.Builder, bounds dynamo.Bounds, scale float64) {
	w := float64(bounds.Width) * scale
	h := float64(bounds.Height) * scale
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s" stroke="%s" stroke-width="2"/>
`, w, h, w, h, background, wallColor)
}

func circles(sb *strings.Builder, bodies []dynamo.Body, scale float64) {
	sb.WriteString(`<g fill="none" stroke="` + bodyColor + `" stroke-width="1.5">` + "\n")
	for _, b := range bodies {
		if !b.Position.IsFinite() {
			continue
		}
		fmt.Fprintf(sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
			float64(b.Position.X)*scale, float64(b.Position.Y)*scale, float64(b.Radius)*scale)
	}
	sb.WriteString("</g>\n")
}

// FrameSVG draws one frame: the world rectangle and every body as a circle.
// Coordinates are world units times scale.
func FrameSVG(frame sim.Frame, bounds dynamo.Bounds, scale float64) string {
	var sb strings.Builder
	header(&sb, bounds, scale)
	circles(&sb, frame.Bodies, scale)
	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoriesSVG draws the path of each body across frames and the final
// frame on top. Bodies are matched by index, so frames must come from a run
// without removals. Non-finite points break the path.
func TrajectoriesSVG(frames []sim.Frame, bounds dynamo.Bounds, scale float64) string {
	var sb strings.Builder
	header(&sb, bounds, scale)
	if len(frames) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	last := frames[len(frames)-1]
	sb.WriteString(`<g fill="none" stroke="` + trailColor + `" stroke-width="1" stroke-opacity="0.6">` + "\n")
	for i := range last.Bodies {
		var d strings.Builder
		move := true
		for _, f := range frames {
			if i >= len(f.Bodies) || !f.Bodies[i].Position.IsFinite() {
				move = true
				continue
			}
			p := f.Bodies[i].Position
			cmd := " L"
			if move {
				cmd = " M"
				move = false
			}
			fmt.Fprintf(&d, "%s%.1f,%.1f", cmd, float64(p.X)*scale, float64(p.Y)*scale)
		}
		if d.Len() > 0 {
			fmt.Fprintf(&sb, `<path d="%s"/>`+"\n", strings.TrimSpace(d.String()))
		}
	}
	sb.WriteString("</g>\n")

	circles(&sb, last.Bodies, scale)
	sb.WriteString("</svg>")
	return sb.String()
}
