package seamcut

import "image"

// RemoveSeam returns a copy of img with the given seam dropped: one
// column shorter for a vertical seam, one row shorter for a horizontal
// one. The input image is never modified. A seam whose length does not
// match the corresponding image dimension, or which contains an out of
// range index, yields a DimensionError.
func RemoveSeam(img *image.NRGBA, seam Seam, orient Orientation) (*image.NRGBA, error) {
	if orient == Vertical {
		return removeVertical(img, seam)
	}
	return removeHorizontal(img, seam)
}

func removeVertical(img *image.NRGBA, seam Seam) (*image.NRGBA, error) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if len(seam) != dy {
		return nil, &DimensionError{Op: "remove vertical seam: length", Want: dy, Got: len(seam)}
	}
	if dx < 2 {
		return nil, &DimensionError{Op: "remove vertical seam: width", Want: 2, Got: dx}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dx-1, dy))
	for y := 0; y < dy; y++ {
		x := seam[y]
		if x < 0 || x >= dx {
			return nil, &DimensionError{Op: "remove vertical seam: column", Want: dx - 1, Got: x}
		}
		so, do := y*img.Stride, y*dst.Stride
		copy(dst.Pix[do:do+x*4], img.Pix[so:so+x*4])
		copy(dst.Pix[do+x*4:do+(dx-1)*4], img.Pix[so+(x+1)*4:so+dx*4])
	}
	return dst, nil
}

func removeHorizontal(img *image.NRGBA, seam Seam) (*image.NRGBA, error) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if len(seam) != dx {
		return nil, &DimensionError{Op: "remove horizontal seam: length", Want: dx, Got: len(seam)}
	}
	if dy < 2 {
		return nil, &DimensionError{Op: "remove horizontal seam: height", Want: 2, Got: dy}
	}
	for _, y := range seam {
		if y < 0 || y >= dy {
			return nil, &DimensionError{Op: "remove horizontal seam: row", Want: dy - 1, Got: y}
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy-1))
	for x := 0; x < dx; x++ {
		dsty := 0
		for y := 0; y < dy; y++ {
			if y == seam[x] {
				continue
			}
			so := y*img.Stride + x*4
			do := dsty*dst.Stride + x*4
			copy(dst.Pix[do:do+4], img.Pix[so:so+4])
			dsty++
		}
	}
	return dst, nil
}
