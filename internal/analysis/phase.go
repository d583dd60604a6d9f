package analysis

import (
	"math"
	"strings"
)

// PhasePortrait2D holds data for a 2D projection of a trajectory
type PhasePortrait2D struct {
	Points []struct{ X, Y float64 }
}

// NewOrbitPlot pairs two coordinate series, truncating to the shorter one.
func NewOrbitPlot(xs, ys []float64) *PhasePortrait2D {
	n := min(len(xs), len(ys))
	portrait := &PhasePortrait2D{
		Points: make([]struct{ X, Y float64 }, 0, n),
	}
	for i := 0; i < n; i++ {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: xs[i], Y: ys[i]})
	}
	return portrait
}

// PhasePortraitToASCII converts a projection to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	// Create canvas
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Plot points
	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	// Convert to string
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records points when a trajectory crosses a plane
type PoincareSection struct {
	Points []struct{ X, Y float64 }
}

// NewPoincareSection records (xs, ys) each time cross rises through
// threshold, linearly interpolated between the bracketing samples.
func NewPoincareSection(xs, ys, cross []float64, threshold float64) *PoincareSection {
	n := min(len(xs), len(ys), len(cross))
	section := &PoincareSection{
		Points: make([]struct{ X, Y float64 }, 0),
	}

	for i := 1; i < n; i++ {
		prevVal, currVal := cross[i-1], cross[i]

		// Detect positive-going crossing
		if prevVal < threshold && currVal >= threshold {
			frac := (threshold - prevVal) / (currVal - prevVal)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}

			section.Points = append(section.Points, struct{ X, Y float64 }{
				X: xs[i-1] + frac*(xs[i]-xs[i-1]),
				Y: ys[i-1] + frac*(ys[i]-ys[i-1]),
			})
		}
	}

	return section
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	// Use same logic as phase portrait
	portrait := &PhasePortrait2D{Points: section.Points}
	return PhasePortraitToASCII(portrait, width, height)
}
