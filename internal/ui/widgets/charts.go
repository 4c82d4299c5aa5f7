package widgets

import (
	"math"
	"strings"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Spark8 draws vals (each in [0,1]) as a one-line sparkline, sampling evenly
// when there are more values than cells.
func Spark8(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	step := float64(len(vals)) / float64(width)
	var b strings.Builder
	for i := 0; i < width; i++ {
		idx := int(math.Min(float64(len(vals)-1), math.Floor(float64(i)*step)))
		v := clamp01(vals[idx])
		level := int(math.Round(v * float64(len(blocks)-1)))
		b.WriteRune(blocks[level])
	}
	return b.String()
}

func Bar(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	v = clamp01(v)
	fill := int(math.Round(v * float64(width)))
	if v > 0 && fill == 0 {
		fill = 1
	}
	return strings.Repeat("█", fill) + strings.Repeat(" ", width-fill)
}

// Columns draws a vertical bar per value (each in [0,1]) and returns height
// lines, top first. Columns are colWidth cells wide with one blank between
// them. paint, if set, styles the non-empty cells of column i.
func Columns(vals []float64, height, colWidth int, paint func(i int, cell string) string) []string {
	if len(vals) == 0 || height <= 0 || colWidth <= 0 {
		return nil
	}
	rows := make([]strings.Builder, height)
	for i, v := range vals {
		eighths := int(math.Round(clamp01(v) * float64(height*8)))
		for r := 0; r < height; r++ {
			fill := eighths - (height-1-r)*8
			ch := ' '
			switch {
			case fill >= 8:
				ch = '█'
			case fill > 0:
				ch = blocks[fill-1]
			}
			cell := strings.Repeat(string(ch), colWidth)
			if paint != nil && ch != ' ' {
				cell = paint(i, cell)
			}
			if i > 0 {
				rows[r].WriteByte(' ')
			}
			rows[r].WriteString(cell)
		}
	}
	out := make([]string, height)
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

// Labels lays labels under Columns output, writing every step-th label at
// its column's offset if it fits before the next written label.
func Labels(labels []string, colWidth, step int) string {
	if len(labels) == 0 || colWidth <= 0 {
		return ""
	}
	if step < 1 {
		step = 1
	}
	width := len(labels)*(colWidth+1) - 1
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i := 0; i < len(labels); i += step {
		at := i * (colWidth + 1)
		if at < next {
			continue
		}
		lbl := []rune(labels[i])
		if at+len(lbl) > width {
			lbl = lbl[:max(0, width-at)]
		}
		copy(line[at:], lbl)
		next = at + len(lbl) + 1
	}
	return strings.TrimRight(string(line), " ")
}

// Scale maps vals linearly onto [0,1] using lo..hi. A flat range maps to 0.5.
func Scale(vals []float64, lo, hi float64) []float64 {
	out := make([]float64, len(vals))
	span := hi - lo
	for i, v := range vals {
		if span <= 0 {
			out[i] = 0.5
			continue
		}
		out[i] = clamp01((v - lo) / span)
	}
	return out
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
