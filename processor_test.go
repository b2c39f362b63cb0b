package seamcut

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessor_CarveToAbsoluteTarget(t *testing.T) {
	p := &Processor{
		NewWidth:  6,
		NewHeight: 5,
		Method:    MethodDP,
	}

	res, err := p.Carve(noiseImage(10, 8))
	assert.NoError(t, err)
	assert.Equal(t, 6, res.Bounds().Dx())
	assert.Equal(t, 5, res.Bounds().Dy())
}

func TestProcessor_ZeroTargetKeepsDimension(t *testing.T) {
	p := &Processor{NewWidth: 7, Method: MethodGreedy}

	res, err := p.Carve(noiseImage(10, 8))
	assert.NoError(t, err)
	assert.Equal(t, 7, res.Bounds().Dx())
	assert.Equal(t, 8, res.Bounds().Dy())
}

func TestProcessor_PercentageTargets(t *testing.T) {
	p := &Processor{
		NewWidth:   50,
		NewHeight:  75,
		Percentage: true,
		Method:     MethodDP,
	}

	res, err := p.Carve(noiseImage(12, 8))
	assert.NoError(t, err)
	assert.Equal(t, 6, res.Bounds().Dx())
	assert.Equal(t, 6, res.Bounds().Dy())
}

func TestProcessor_PercentageOutOfRange(t *testing.T) {
	p := &Processor{
		NewWidth:   120,
		Percentage: true,
		Method:     MethodDP,
	}

	_, err := p.Carve(noiseImage(10, 10))
	assert.Error(t, err)
}

func TestProcessor_SquareNeedsBothTargets(t *testing.T) {
	p := &Processor{NewWidth: 6, Square: true, Method: MethodDP}

	_, err := p.Carve(noiseImage(10, 8))
	assert.Error(t, err)
}

func TestProcessor_SquareUsesShortestEdge(t *testing.T) {
	p := &Processor{
		NewWidth:  8,
		NewHeight: 6,
		Square:    true,
		Method:    MethodDP,
	}

	res, err := p.Carve(noiseImage(10, 9))
	assert.NoError(t, err)
	assert.Equal(t, 6, res.Bounds().Dx())
	assert.Equal(t, 6, res.Bounds().Dy())
}

func TestProcessor_EnlargementRejected(t *testing.T) {
	p := &Processor{NewWidth: 20, Method: MethodDP}

	_, err := p.Carve(noiseImage(10, 10))
	assert.ErrorIs(t, err, ErrUnsupportedOp)
}

func TestProcessor_ScalePrescalesBeforeCarving(t *testing.T) {
	p := &Processor{
		NewWidth:  10,
		NewHeight: 5,
		Scale:     true,
		Method:    MethodGreedy,
	}

	res, err := p.Carve(noiseImage(40, 30))
	assert.NoError(t, err)
	assert.Equal(t, 10, res.Bounds().Dx())
	assert.Equal(t, 5, res.Bounds().Dy())
}

func TestProcessor_BlurPreprocessingKeepsDimensions(t *testing.T) {
	p := &Processor{
		NewWidth:   8,
		BlurRadius: 2,
		Method:     MethodDP,
	}

	res, err := p.Carve(noiseImage(10, 6))
	assert.NoError(t, err)
	assert.Equal(t, 8, res.Bounds().Dx())
	assert.Equal(t, 6, res.Bounds().Dy())
}

func TestProcessor_DebugCapturesSeamOverlay(t *testing.T) {
	p := &Processor{
		NewWidth:  8,
		Debug:     true,
		SeamColor: "#ff0000",
		Method:    MethodDP,
	}

	src := uniformImage(10, 6, color.White)
	_, err := p.Carve(src)
	assert.NoError(t, err)

	overlay := p.SeamOverlay()
	assert.NotNil(t, overlay)
	assert.Equal(t, 10, overlay.Bounds().Dx())
	assert.Equal(t, 6, overlay.Bounds().Dy())

	red := color.NRGBA{R: 0xff, A: 0xff}
	var painted int
	for y := 0; y < 6; y++ {
		for x := 0; x < 10; x++ {
			if overlay.NRGBAAt(x, y) == red {
				painted++
			}
		}
	}
	assert.Equal(t, 6, painted, "one painted pixel per row")
}

func TestProcessor_FaceDetectWithoutClassifier(t *testing.T) {
	p := &Processor{
		NewWidth:   8,
		FaceDetect: true,
		Method:     MethodDP,
	}

	_, err := p.Carve(noiseImage(10, 10))
	assert.Error(t, err)
}

func TestProcessor_ProcessRoundTrip(t *testing.T) {
	var in, out bytes.Buffer
	assert.NoError(t, png.Encode(&in, noiseImage(10, 8)))

	p := &Processor{NewWidth: 7, NewHeight: 6, Method: MethodDP}
	assert.NoError(t, p.Process(&in, &out))

	// Non-file writers receive JPEG output.
	res, kind, err := image.Decode(bytes.NewReader(out.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, "jpeg", kind)
	assert.Equal(t, 7, res.Bounds().Dx())
	assert.Equal(t, 6, res.Bounds().Dy())
}
