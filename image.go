package seamcut

import (
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// ImgToNRGBA converts any image type to *image.NRGBA with the min
// point at (0, 0).
func ImgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok {
		b := src.Bounds()
		if b.Min.X == 0 && b.Min.Y == 0 {
			return src
		}
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// cloneNRGBA returns a deep copy of src.
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// encodeImg encodes the image into the writer, choosing the format by
// the destination file extension. Writers other than files get JPEG.
func encodeImg(w io.Writer, img image.Image) error {
	f, ok := w.(*os.File)
	if !ok {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	}

	switch ext := filepath.Ext(f.Name()); ext {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	case ".png":
		return png.Encode(f, img)
	case ".bmp":
		return bmp.Encode(f, img)
	default:
		return errors.Errorf("unsupported image format: %s", ext)
	}
}
