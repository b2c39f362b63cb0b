package seamcut

import (
	"image"

	"github.com/pkg/errors"
)

// Resizer drives repeated energy estimation, seam finding and seam
// removal until the working image reaches a target size. It owns two
// images: the original, kept untouched for the lifetime of the
// resizer, and the working image, which is replaced (never mutated in
// place) on every removed seam. Between steps the working image is
// always a fully valid image, so an interactive host may stop calling
// Step at any point with nothing to clean up.
type Resizer struct {
	// Method selects the seam finding strategy for every step.
	Method Method

	// SobelThreshold, when positive, zeroes energy values below it
	// before seams are searched.
	SobelThreshold float64

	// Preprocess, when set, is applied to the working image before each
	// energy estimation pass. Only the estimator sees its output; the
	// working image itself stays untouched.
	Preprocess func(*image.NRGBA) *image.NRGBA

	// BoostEnergy, when set, may raise energy values after estimation,
	// e.g. to route seams around detected faces.
	BoostEnergy func(*Carver, *image.NRGBA)

	// OnSeam, when set, is invoked after every removed seam.
	OnSeam func(Seam, Orientation)

	original *image.NRGBA
	working  *image.NRGBA
}

// NewResizer wraps img for carving with the given seam finding method.
func NewResizer(img image.Image, method Method) *Resizer {
	src := ImgToNRGBA(img)
	return &Resizer{
		Method:   method,
		original: src,
		working:  cloneNRGBA(src),
	}
}

// Image returns the current working image.
func (r *Resizer) Image() *image.NRGBA {
	return r.working
}

// Original returns a copy of the untouched source image.
func (r *Resizer) Original() *image.NRGBA {
	return cloneNRGBA(r.original)
}

// Reset discards all removed seams, restoring the working image to the
// original.
func (r *Resizer) Reset() {
	r.working = cloneNRGBA(r.original)
}

// Energy recomputes the energy table for the current working image.
// The table is never cached across removals, since every removal
// shifts pixel adjacency.
func (r *Resizer) Energy() (*Carver, error) {
	img := r.working
	if r.Preprocess != nil {
		img = r.Preprocess(img)
	}

	c := NewCarver(img.Bounds().Dx(), img.Bounds().Dy())
	if err := c.ComputeEnergy(img); err != nil {
		return nil, err
	}
	if r.SobelThreshold > 0 {
		c.ApplyThreshold(r.SobelThreshold)
	}
	if r.BoostEnergy != nil {
		r.BoostEnergy(c, r.working)
	}
	return c, nil
}

// FindSeam runs one seam search on a fresh energy table without
// removing anything, so a host can render an overlay before deciding
// to carve.
func (r *Resizer) FindSeam(orient Orientation) (Seam, error) {
	c, err := r.Energy()
	if err != nil {
		return nil, err
	}
	return c.FindSeam(r.Method, orient)
}

// Step removes exactly one seam: estimate, find, remove. It returns
// the removed seam so callers can visualize or log it.
func (r *Resizer) Step(orient Orientation) (Seam, error) {
	seam, err := r.FindSeam(orient)
	if err != nil {
		return nil, err
	}
	next, err := RemoveSeam(r.working, seam, orient)
	if err != nil {
		return nil, err
	}
	r.working = next

	if r.OnSeam != nil {
		r.OnSeam(seam, orient)
	}
	return seam, nil
}

// Resize removes seams until the working image measures width x height.
// The width phase always completes before the height phase begins.
// Targets larger than the current image are rejected with
// ErrUnsupportedOp and non-positive targets with ErrInvalidTarget; in
// both cases the working image is left untouched. Resizing to the
// current size is a no-op.
func (r *Resizer) Resize(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidTarget, "%dx%d", width, height)
	}
	dx, dy := r.working.Bounds().Dx(), r.working.Bounds().Dy()
	if width > dx || height > dy {
		return nil, errors.Wrapf(ErrUnsupportedOp, "%dx%d exceeds %dx%d", width, height, dx, dy)
	}

	for r.working.Bounds().Dx() > width {
		if _, err := r.Step(Vertical); err != nil {
			return nil, err
		}
	}
	for r.working.Bounds().Dy() > height {
		if _, err := r.Step(Horizontal); err != nil {
			return nil, err
		}
	}
	return r.working, nil
}
