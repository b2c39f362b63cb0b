package seamcut

type kernel [3][3]int32

// The two discrete derivative kernels applied by the energy estimator.
// See https://en.wikipedia.org/wiki/Sobel_operator
var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)
