package seamcut

import "image"

// luminance reduces each pixel to a single intensity value using the
// standard channel weights. The result is indexed row-major.
func luminance(img *image.NRGBA) []float64 {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	lum := make([]float64, dx*dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := y*img.Stride + x*4
			lum[y*dx+x] = 0.299*float64(img.Pix[i]) +
				0.587*float64(img.Pix[i+1]) +
				0.114*float64(img.Pix[i+2])
		}
	}
	return lum
}

// rgbToGrayscale converts an image to grayscale mode and returns the
// pixel values as a one dimensional array, the layout the face
// detector expects.
func rgbToGrayscale(img *image.NRGBA) []uint8 {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	gray := make([]uint8, dx*dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray[y*dx+x] = uint8(
				(0.299*float64(r) +
					0.587*float64(g) +
					0.114*float64(b)) / 256,
			)
		}
	}
	return gray
}
