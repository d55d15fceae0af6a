// Package draw renders onto an ANSI terminal using half-block characters.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockLight     = '░'
)

// ANSI SGR color sequences for HUD text.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorRed        = "\033[31m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
)

// Bar returns a fixed-width progress bar for a fraction in [0,1].
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = BlockFull
		} else {
			bar[i] = BlockLight
		}
	}
	return string(bar)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
