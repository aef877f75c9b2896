package analysis

import (
	"math"
	"strings"

	"github.com/lmarzola/odelab/internal/ode"
)

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []struct{ X, Y float64 }
}

// PhasePortrait projects a trajectory onto two state columns.
func PhasePortrait(tr *ode.Trajectory, xIdx, yIdx int) *PhasePortrait2D {
	if xIdx < 0 || yIdx < 0 || xIdx >= tr.Dim || yIdx >= tr.Dim {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]struct{ X, Y float64 }, 0, tr.Len()),
	}
	for i := 0; i < tr.Len(); i++ {
		y := tr.Y(i)
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: y[xIdx],
			Y: y[yIdx],
		})
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

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

	// 10% padding keeps the orbit off the frame
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// draw axes if they cross the visible area
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

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records states where a chosen coordinate crosses a
// threshold from below.
type PoincareSection struct {
	Points []struct{ X, Y float64 }
}

// Section scans a trajectory for positive-going crossings of
// y[crossIdx] through threshold and records the linearly interpolated
// (y[recordX], y[recordY]) at each crossing.
func Section(tr *ode.Trajectory, crossIdx int, threshold float64, recordX, recordY int) *PoincareSection {
	if crossIdx < 0 || recordX < 0 || recordY < 0 ||
		crossIdx >= tr.Dim || recordX >= tr.Dim || recordY >= tr.Dim {
		return nil
	}

	section := &PoincareSection{Points: make([]struct{ X, Y float64 }, 0)}
	for i := 1; i < tr.Len(); i++ {
		prev := tr.Y(i - 1)
		curr := tr.Y(i)
		if prev[crossIdx] < threshold && curr[crossIdx] >= threshold {
			frac := (threshold - prev[crossIdx]) / (curr[crossIdx] - prev[crossIdx])
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			section.Points = append(section.Points, struct{ X, Y float64 }{
				X: prev[recordX] + frac*(curr[recordX]-prev[recordX]),
				Y: prev[recordY] + frac*(curr[recordY]-prev[recordY]),
			})
		}
	}
	return section
}

// SectionToASCII converts section data to an ASCII plot.
func SectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}
	portrait := &PhasePortrait2D{Points: section.Points}
	return PhasePortraitToASCII(portrait, width, height)
}
