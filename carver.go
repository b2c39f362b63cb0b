package seamcut

import (
	"image"
	"math"
)

// Carver holds the energy table computed for one pixel grid.
// The table is stored as a flat slice indexed row-major; it is
// recomputed from scratch for every removed seam, because removing
// a seam changes pixel adjacency everywhere along its path.
type Carver struct {
	Width  int
	Height int
	Points []float64
}

// NewCarver returns an initialized carver for a width x height grid.
func NewCarver(width, height int) *Carver {
	return &Carver{
		Width:  width,
		Height: height,
		Points: make([]float64, width*height),
	}
}

// Get returns the energy value at (x, y).
func (c *Carver) Get(x, y int) float64 {
	return c.Points[x+y*c.Width]
}

// Set updates the energy value at (x, y).
func (c *Carver) Set(x, y int, v float64) {
	c.Points[x+y*c.Width] = v
}

// ComputeEnergy fills the energy table from the image. Each pixel is
// reduced to its luminance, the two Sobel kernels are applied with the
// borders replicated, and the energy is the gradient magnitude
// sqrt(gx²+gy²). High energy marks edges and detail, low energy marks
// the smooth regions a seam should prefer.
func (c *Carver) ComputeEnergy(img *image.NRGBA) error {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if dx != c.Width {
		return &DimensionError{Op: "compute energy: width", Want: c.Width, Got: dx}
	}
	if dy != c.Height {
		return &DimensionError{Op: "compute energy: height", Want: c.Height, Got: dy}
	}

	lum := luminance(img)
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			var gx, gy float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					v := lum[clamp(y+ky-1, dy-1)*dx+clamp(x+kx-1, dx-1)]
					gx += v * float64(kernelX[ky][kx])
					gy += v * float64(kernelY[ky][kx])
				}
			}
			c.Set(x, y, math.Sqrt(gx*gx+gy*gy))
		}
	}
	return nil
}

// ApplyThreshold zeroes out every energy value below t.
// It acts as a noise floor so that faint gradients do not
// steer seams away from genuinely flat regions.
func (c *Carver) ApplyThreshold(t float64) {
	for i, v := range c.Points {
		if v < t {
			c.Points[i] = 0
		}
	}
}

// SeamCost sums the energy along the seam for the given orientation.
func (c *Carver) SeamCost(seam Seam, orient Orientation) float64 {
	var cost float64
	if orient == Vertical {
		for y, x := range seam {
			cost += c.Get(x, y)
		}
		return cost
	}
	for x, y := range seam {
		cost += c.Get(x, y)
	}
	return cost
}

// transpose mirrors the energy table over its main diagonal, so that
// the vertical seam algorithms can be reused for horizontal seams.
func (c *Carver) transpose() *Carver {
	t := NewCarver(c.Height, c.Width)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			t.Set(y, x, c.Get(x, y))
		}
	}
	return t
}

// clamp restricts v to the [0, max] interval, replicating the border
// pixels for kernel positions outside the grid.
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
