package render

// floatImage is a linear RGB accumulation buffer for the bloom pass.
type floatImage struct {
	w, h int
	r    []float64
	g    []float64
	b    []float64
}

func newFloatImage(w, h int) *floatImage {
	return &floatImage{
		w: w, h: h,
		r: make([]float64, w*h),
		g: make([]float64, w*h),
		b: make([]float64, w*h),
	}
}

func (f *floatImage) at(x, y int) (float64, float64, float64) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return 0, 0, 0
	}
	i := y*f.w + x
	return f.r[i], f.g[i], f.b[i]
}

// brightPass extracts cells whose luminance clears the threshold into a
// float image; everything else contributes zero energy.
func brightPass(buf *Buffer, threshold float64) *floatImage {
	img := newFloatImage(buf.W, buf.H)
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			cell := buf.At(x, y)
			if cell.Glyph == ' ' {
				continue
			}
			if luminance(cell.Color) < threshold {
				continue
			}
			i := y*buf.W + x
			img.r[i] = cell.Color.R
			img.g[i] = cell.Color.G
			img.b[i] = cell.Color.B
		}
	}
	return img
}

// blur applies a separable box blur with the given tap radius on each side,
// horizontal then vertical. Radius 0 is a no-op.
func (f *floatImage) blur(radius int) {
	if radius <= 0 {
		return
	}
	f.blurAxis(radius, true)
	f.blurAxis(radius, false)
}

func (f *floatImage) blurAxis(radius int, horizontal bool) {
	nr := make([]float64, len(f.r))
	ng := make([]float64, len(f.g))
	nb := make([]float64, len(f.b))

	norm := 1.0 / float64(2*radius+1)

	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			var sr, sg, sb float64
			for d := -radius; d <= radius; d++ {
				var cr, cg, cb float64
				if horizontal {
					cr, cg, cb = f.at(x+d, y)
				} else {
					cr, cg, cb = f.at(x, y+d)
				}
				sr += cr
				sg += cg
				sb += cb
			}
			i := y*f.w + x
			nr[i] = sr * norm
			ng[i] = sg * norm
			nb[i] = sb * norm
		}
	}

	f.r, f.g, f.b = nr, ng, nb
}
