package render

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/poiesic/clingraph/core"
	"github.com/poiesic/clingraph/graph"
)

const (
	canvasWidth  = 1200
	canvasHeight = 900
	nodeRadius   = 26.0
	maxLabelLen  = 28
)

// Draw renders the subgraph to a PNG file at path. Nodes are placed evenly
// on a circle in the subgraph's node order, so repeated renders of the same
// subgraph produce the same layout.
func Draw(g *graph.Subgraph, lexicon *core.Lexicon, path string) error {
	nodes := g.Nodes()

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx := float64(canvasWidth) / 2
	cy := float64(canvasHeight) / 2
	layoutRadius := math.Min(cx, cy) - 4*nodeRadius

	positions := make(map[core.ID][2]float64, len(nodes))
	for i, c := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		x := cx + layoutRadius*math.Cos(angle)
		y := cy + layoutRadius*math.Sin(angle)
		positions[c.Id] = [2]float64{x, y}
	}

	for _, rel := range g.Edges() {
		from, to := positions[rel.From], positions[rel.To]
		drawArrow(dc, from[0], from[1], to[0], to[1])

		label := truncate(lexicon.DisplayName(rel.Type), maxLabelLen)
		dc.SetRGB(0.35, 0.35, 0.35)
		dc.DrawStringAnchored(label, (from[0]+to[0])/2, (from[1]+to[1])/2-6, 0.5, 0.5)
	}

	for _, c := range nodes {
		p := positions[c.Id]
		dc.SetRGB(0.85, 0.91, 0.98)
		dc.DrawCircle(p[0], p[1], nodeRadius)
		dc.Fill()
		dc.SetRGB(0.25, 0.45, 0.7)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(p[0], p[1], nodeRadius)
		dc.Stroke()

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(truncate(c.Name, maxLabelLen), p[0], p[1]+nodeRadius+12, 0.5, 0.5)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving graph image to %q: %w", path, err)
	}
	return nil
}

func drawArrow(dc *gg.Context, x1, y1, x2, y2 float64) {
	angle := math.Atan2(y2-y1, x2-x1)

	// Pull both endpoints back to the node boundary.
	sx := x1 + nodeRadius*math.Cos(angle)
	sy := y1 + nodeRadius*math.Sin(angle)
	ex := x2 - nodeRadius*math.Cos(angle)
	ey := y2 - nodeRadius*math.Sin(angle)

	dc.SetRGB(0.45, 0.45, 0.45)
	dc.SetLineWidth(1.5)
	dc.DrawLine(sx, sy, ex, ey)
	dc.Stroke()

	const headLen = 10.0
	left := angle + math.Pi - math.Pi/7
	right := angle + math.Pi + math.Pi/7
	dc.DrawLine(ex, ey, ex+headLen*math.Cos(left), ey+headLen*math.Sin(left))
	dc.DrawLine(ex, ey, ex+headLen*math.Cos(right), ey+headLen*math.Sin(right))
	dc.Stroke()
}

// truncate shortens s to at most max runes. Counting runes keeps multi-byte
// concept names from being cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
