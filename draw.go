package seamcut

import (
	"image"
	"image/color"
)

// DrawSeam returns a copy of img with the seam pixels painted in the
// given color, so callers can render where the next removal would cut.
func DrawSeam(img *image.NRGBA, seam Seam, orient Orientation, col color.NRGBA) *image.NRGBA {
	dst := cloneNRGBA(img)
	dx, dy := dst.Bounds().Dx(), dst.Bounds().Dy()

	if orient == Vertical {
		for y, x := range seam {
			if y < dy && x >= 0 && x < dx {
				dst.SetNRGBA(x, y, col)
			}
		}
		return dst
	}
	for x, y := range seam {
		if x < dx && y >= 0 && y < dy {
			dst.SetNRGBA(x, y, col)
		}
	}
	return dst
}
