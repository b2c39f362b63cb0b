package seamcut

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"

	"github.com/seamcut/seamcut/utils"
)

// protectedEnergy is well above any reachable gradient magnitude, so
// pixels marked with it are removed last.
const protectedEnergy = 1 << 14

// Processor bundles the user facing resize options and drives the
// carving engine. The zero value shrinks nothing; set the target
// fields before calling Process or Carve.
type Processor struct {
	SobelThreshold int
	BlurRadius     int
	NewWidth       int
	NewHeight      int
	Percentage     bool
	Square         bool
	Scale          bool
	Debug          bool
	FaceDetect     bool
	FaceAngle      float64
	Classifier     string
	SeamColor      string
	Method         Method

	faceDetector *pigo.Pigo
	seamOverlay  *image.NRGBA
}

// Process decodes an image from the reader, carves it down to the
// configured target size and encodes the result into the writer. The
// output format follows the destination file extension; non-file
// writers receive JPEG.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "unable to decode the source image")
	}

	res, err := p.Carve(ImgToNRGBA(src))
	if err != nil {
		return err
	}
	return encodeImg(w, res)
}

// Carve resizes the image down to the configured target size. Zero
// width or height targets keep the corresponding source dimension.
func (p *Processor) Carve(img *image.NRGBA) (*image.NRGBA, error) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	tw, th, err := p.targetSize(dx, dy)
	if err != nil {
		return nil, err
	}

	if p.FaceDetect {
		if err := p.initFaceDetector(); err != nil {
			return nil, err
		}
	}

	// With both dimensions shrinking, a proportional Lanczos rescale
	// first takes the image close to the target while preserving the
	// aspect ratio; only the remaining pixels are carved.
	if p.Scale && tw < dx && th < dy {
		img = p.prescale(img, tw, th)
	}

	r := NewResizer(img, p.Method)
	r.SobelThreshold = float64(p.SobelThreshold)
	if p.BlurRadius > 0 {
		radius := float64(p.BlurRadius)
		r.Preprocess = func(img *image.NRGBA) *image.NRGBA {
			return imaging.Blur(img, radius)
		}
	}
	if p.FaceDetect {
		r.BoostEnergy = p.protectFaces
	}

	if p.Debug {
		if err := p.captureSeamOverlay(r, tw, th); err != nil {
			return nil, err
		}
	}

	return r.Resize(tw, th)
}

// SeamOverlay returns the image captured in debug mode with the first
// seam of each phase painted, or nil when debug mode is off.
func (p *Processor) SeamOverlay() *image.NRGBA {
	return p.seamOverlay
}

// targetSize resolves the configured targets to pixel dimensions.
// With Percentage set, the targets are interpreted as 1-100 percent of
// the source dimensions. A zero target keeps the source dimension.
func (p *Processor) targetSize(dx, dy int) (int, int, error) {
	nw, nh := p.NewWidth, p.NewHeight

	if p.Percentage {
		if nw < 0 || nw > 100 || nh < 0 || nh > 100 {
			return 0, 0, errors.New("percentage targets must be between 1 and 100")
		}
		if nw > 0 {
			nw = int(float64(dx) * float64(nw) / 100)
		}
		if nh > 0 {
			nh = int(float64(dy) * float64(nh) / 100)
		}
	}

	if nw == 0 {
		nw = dx
	}
	if nh == 0 {
		nh = dy
	}

	if p.Square {
		if p.NewWidth == 0 || p.NewHeight == 0 {
			return 0, 0, errors.New("please provide both a width and a height when using the square option")
		}
		nw = utils.Min(nw, nh)
		nh = nw
	}
	return nw, nh, nil
}

// prescale shrinks the image proportionally so both dimensions stay at
// or above the carving targets.
func (p *Processor) prescale(img *image.NRGBA, tw, th int) *image.NRGBA {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	f := math.Min(float64(dx)/float64(tw), float64(dy)/float64(th))
	if f <= 1 {
		return img
	}
	sw := int(math.Ceil(float64(dx) / f))
	sh := int(math.Ceil(float64(dy) / f))

	return imaging.Resize(img, sw, sh, imaging.Lanczos)
}

// initFaceDetector unpacks the cascade classifier once per processor.
func (p *Processor) initFaceDetector() error {
	if p.faceDetector != nil {
		return nil
	}
	if len(p.Classifier) == 0 {
		return errors.New("please specify a cascade classifier file when using face detection")
	}
	data, err := os.ReadFile(p.Classifier)
	if err != nil {
		return errors.Wrap(err, "unable to read the cascade classifier")
	}
	p.faceDetector, err = pigo.NewPigo().Unpack(data)
	if err != nil {
		return errors.Wrap(err, "error unpacking the cascade file")
	}
	return nil
}

// protectFaces reruns the face detector over the current working image
// and raises the energy over every detected face zone, so seams route
// around them. Detection runs on every pass because removals shift the
// face positions.
func (p *Processor) protectFaces(c *Carver, img *image.NRGBA) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	params := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(img),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	faces := p.faceDetector.RunCascade(params, p.FaceAngle)
	faces = p.faceDetector.ClusterDetections(faces, 0.2)

	for _, face := range faces {
		if face.Q <= 5.0 {
			continue
		}
		x0 := clamp(face.Col-face.Scale/2, dx-1)
		x1 := clamp(face.Col+face.Scale/2, dx-1)
		y0 := clamp(face.Row-face.Scale/2, dy-1)
		y1 := clamp(face.Row+face.Scale/2, dy-1)

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.Set(x, y, protectedEnergy)
			}
		}
	}
}

// captureSeamOverlay paints the first seam of each shrinking phase
// over a copy of the working image for the debug output.
func (p *Processor) captureSeamOverlay(r *Resizer, tw, th int) error {
	overlay := r.Original()
	col := utils.HexToRGBA(p.SeamColor)

	dx, dy := overlay.Bounds().Dx(), overlay.Bounds().Dy()
	if tw > 0 && tw < dx {
		seam, err := r.FindSeam(Vertical)
		if err != nil {
			return err
		}
		overlay = DrawSeam(overlay, seam, Vertical, col)
	}
	if th > 0 && th < dy {
		seam, err := r.FindSeam(Horizontal)
		if err != nil {
			return err
		}
		overlay = DrawSeam(overlay, seam, Horizontal, col)
	}
	p.seamOverlay = overlay
	return nil
}
