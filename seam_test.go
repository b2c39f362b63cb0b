package seamcut

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var allMethods = []Method{MethodDP, MethodGreedy, MethodShortestPath}

// assertConnected verifies the seam invariants: every entry in bounds
// and consecutive entries differing by at most one.
func assertConnected(t *testing.T, seam Seam, bound int) {
	t.Helper()
	for i, x := range seam {
		if x < 0 || x >= bound {
			t.Fatalf("seam entry %d out of bounds: %d not in [0, %d)", i, x, bound)
		}
		if i > 0 {
			d := seam[i] - seam[i-1]
			if d < -1 || d > 1 {
				t.Fatalf("seam not 8-connected at %d: %d -> %d", i, seam[i-1], seam[i])
			}
		}
	}
}

func TestFindSeam_UniformGridTieBreak(t *testing.T) {
	c := newTestCarver([][]float64{
		{5, 5, 5, 5},
		{5, 5, 5, 5},
		{5, 5, 5, 5},
		{5, 5, 5, 5},
	})

	// On a fully uniform grid the lowest index wins every tie, for
	// both the DP and the greedy walk.
	for _, m := range []Method{MethodDP, MethodGreedy} {
		seam, err := c.FindSeam(m, Vertical)
		assert.NoError(t, err)
		assert.Equal(t, Seam{0, 0, 0, 0}, seam, "method %s", m)
	}
}

func TestFindSeam_ObviousValley(t *testing.T) {
	c := newTestCarver([][]float64{
		{9, 1, 9},
		{9, 1, 9},
		{9, 1, 9},
	})

	for _, m := range allMethods {
		seam, err := c.FindSeam(m, Vertical)
		assert.NoError(t, err)
		assert.Equal(t, Seam{1, 1, 1}, seam, "method %s", m)
		assert.Equal(t, 3.0, c.SeamCost(seam, Vertical), "method %s", m)
	}
}

func TestFindSeam_GreedyIsTrappable(t *testing.T) {
	// The greedy walk starts at the cheapest first row entry and gets
	// trapped; DP routes around the wall.
	c := newTestCarver([][]float64{
		{1, 2, 9},
		{9, 9, 1},
	})

	dp, err := c.FindSeam(MethodDP, Vertical)
	assert.NoError(t, err)
	greedy, err := c.FindSeam(MethodGreedy, Vertical)
	assert.NoError(t, err)

	assert.Equal(t, Seam{1, 2}, dp)
	assert.Equal(t, 3.0, c.SeamCost(dp, Vertical))
	assert.Equal(t, Seam{0, 0}, greedy)
	assert.Greater(t, c.SeamCost(greedy, Vertical), c.SeamCost(dp, Vertical))
}

func TestFindSeam_ShortestPathMatchesDPCost(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		w, h := 2+rng.Intn(12), 2+rng.Intn(12)
		c := NewCarver(w, h)
		for i := range c.Points {
			c.Points[i] = rng.Float64() * 100
		}

		dp, err := c.FindSeam(MethodDP, Vertical)
		assert.NoError(t, err)
		sp, err := c.FindSeam(MethodShortestPath, Vertical)
		assert.NoError(t, err)

		assertConnected(t, dp, w)
		assertConnected(t, sp, w)

		// Both solve the same optimization problem, so their total
		// cost must agree even when the seams differ.
		assert.InDelta(t, c.SeamCost(dp, Vertical), c.SeamCost(sp, Vertical), 1e-9,
			"trial %d on a %dx%d grid", trial, w, h)

		greedy, err := c.FindSeam(MethodGreedy, Vertical)
		assert.NoError(t, err)
		assertConnected(t, greedy, w)
		assert.GreaterOrEqual(t, c.SeamCost(greedy, Vertical)+1e-9, c.SeamCost(dp, Vertical))
	}
}

func TestFindSeam_HorizontalIndexMapping(t *testing.T) {
	// Entry i of a horizontal seam is the row index for column i. The
	// cheapest left to right path here dips into the middle row only
	// for the middle column.
	c := newTestCarver([][]float64{
		{1, 9, 1},
		{9, 1, 9},
		{9, 9, 9},
	})

	for _, m := range allMethods {
		seam, err := c.FindSeam(m, Horizontal)
		assert.NoError(t, err)
		assert.Equal(t, Seam{0, 1, 0}, seam, "method %s", m)
	}
}

func TestFindSeam_HorizontalStraightValley(t *testing.T) {
	c := newTestCarver([][]float64{
		{9, 9, 9, 9},
		{1, 1, 1, 1},
		{9, 9, 9, 9},
	})

	for _, m := range allMethods {
		seam, err := c.FindSeam(m, Horizontal)
		assert.NoError(t, err)
		assert.Len(t, seam, 4)
		assert.Equal(t, Seam{1, 1, 1, 1}, seam, "method %s", m)
	}
}

func TestFindSeam_SingleColumnAndSingleRow(t *testing.T) {
	col := newTestCarver([][]float64{{3}, {1}, {2}})
	row := newTestCarver([][]float64{{3, 1, 2}})

	for _, m := range allMethods {
		seam, err := col.FindSeam(m, Vertical)
		assert.NoError(t, err)
		assert.Equal(t, Seam{0, 0, 0}, seam, "method %s", m)

		seam, err = row.FindSeam(m, Horizontal)
		assert.NoError(t, err)
		assert.Equal(t, Seam{0, 0, 0}, seam, "method %s", m)

		// The degenerate single-row vertical seam.
		seam, err = row.FindSeam(m, Vertical)
		assert.NoError(t, err)
		assert.Equal(t, Seam{1}, seam, "method %s", m)
	}
}

func TestFindSeam_BacktrackTieOrder(t *testing.T) {
	// Row 0 offers three parents with equal cumulative cost; straight
	// up must beat diagonal-left, which must beat diagonal-right.
	c := newTestCarver([][]float64{
		{2, 2, 2},
		{9, 0, 9},
	})

	seam, err := c.FindSeam(MethodDP, Vertical)
	assert.NoError(t, err)
	if diff := cmp.Diff(Seam{1, 1}, seam); diff != "" {
		t.Errorf("seam mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMethod(t *testing.T) {
	testCases := []struct {
		in   string
		want Method
	}{
		{"dp", MethodDP},
		{"DP", MethodDP},
		{"greedy", MethodGreedy},
		{"graph", MethodShortestPath},
		{"shortestpath", MethodShortestPath},
	}
	for _, tc := range testCases {
		m, err := ParseMethod(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, m)
		assert.NotEmpty(t, m.String())
	}

	_, err := ParseMethod("simulated-annealing")
	assert.Error(t, err)
}
