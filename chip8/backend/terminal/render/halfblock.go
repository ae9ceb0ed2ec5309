package render

import "github.com/valerio/go-chip8/chip8/video"

// Cell is one terminal cell covering two vertically stacked pixels.
type Cell struct {
	Char rune
	// Top and Bottom report which half of the cell is lit.
	Top, Bottom bool
}

// HalfBlockChar returns the character that shows the lit halves of a cell.
func HalfBlockChar(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// HalfBlocks folds a frame into 64x16 cells.
func HalfBlocks(frame video.Snapshot) [video.FramebufferHeight / 2][video.FramebufferWidth]Cell {
	var cells [video.FramebufferHeight / 2][video.FramebufferWidth]Cell
	for row := range cells {
		for x := range cells[row] {
			top := frame.Pixel(x, row*2)
			bottom := frame.Pixel(x, row*2+1)
			cells[row][x] = Cell{Char: HalfBlockChar(top, bottom), Top: top, Bottom: bottom}
		}
	}
	return cells
}
