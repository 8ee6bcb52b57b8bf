// Package render rasterizes the scene tree into a cell grid and runs the
// two-pass selective-bloom compositor over it.
package render

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrZeroViewport indicates a render target with no area, e.g. during a
// transient resize.
var ErrZeroViewport = errors.New("render: zero-sized viewport")

// Cell is one character cell of the render target.
type Cell struct {
	Glyph rune
	Color colorful.Color
}

// Buffer is a W×H grid of cells, the terminal analogue of a color render
// target.
type Buffer struct {
	W, H  int
	Cells []Cell
}

// NewBuffer allocates a cleared render target. Allocation fails for
// non-positive dimensions.
func NewBuffer(w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroViewport, w, h)
	}
	b := &Buffer{W: w, H: h, Cells: make([]Cell, w*h)}
	b.Clear()
	return b, nil
}

// Clear resets every cell to an empty glyph over black.
func (b *Buffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = Cell{Glyph: ' '}
	}
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the cell at (x, y). Out-of-bounds reads return an empty cell.
func (b *Buffer) At(x, y int) Cell {
	if !b.In(x, y) {
		return Cell{Glyph: ' '}
	}
	return b.Cells[y*b.W+x]
}

// Set writes the cell at (x, y); out-of-bounds writes are dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.In(x, y) {
		return
	}
	b.Cells[y*b.W+x] = c
}

// SetIfEmpty writes the cell only when the target cell is still empty, used
// for backdrop layers that must not overdraw foreground content.
func (b *Buffer) SetIfEmpty(x, y int, c Cell) {
	if !b.In(x, y) {
		return
	}
	if b.Cells[y*b.W+x].Glyph == ' ' {
		b.Cells[y*b.W+x] = c
	}
}

// luminance returns perceptual luminance of a color using Rec. 709 weights.
func luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
