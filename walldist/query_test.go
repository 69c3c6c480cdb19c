package walldist

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thecaptainuniverse/SU2/mesh"
	"github.com/thecaptainuniverse/SU2/utils"
	"golang.org/x/sync/errgroup"
)

// TestNearestElementBruteForce3D is the primary correctness oracle for the
// pruning algorithm: the indexed search must agree with an exhaustive scan
// over every sub-element.
func TestNearestElementBruteForce3D(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := randomTriangleSurface(t, rng, 300)
	ext := ExtractWallSurface(m)
	tree := NewElemADT(ext)
	require.NoError(t, tree.Verify())

	for q := 0; q < 500; q++ {
		p := randomPoint(rng, 3)
		want := bruteNearest(ext, p)
		got := tree.NearestElement(p)
		require.InDelta(t, want, got.Distance, 1e-12, "query %v", p)
		require.GreaterOrEqual(t, got.Distance, 0.0)
	}
}

func TestNearestElementBruteForce2D(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := randomSegmentSurface(t, rng, 250)
	ext := ExtractWallSurface(m)
	tree := NewElemADT(ext)
	require.NoError(t, tree.Verify())

	for q := 0; q < 500; q++ {
		p := randomPoint(rng, 2)
		want := bruteNearest(ext, p)
		got := tree.NearestElement(p)
		require.InDelta(t, want, got.Distance, 1e-12, "query %v", p)
	}
}

func TestNearestElementBruteForceQuads(t *testing.T) {
	// Random warped quads: both sides use the same two-triangle
	// linearization, so the oracle stays exact.
	rng := rand.New(rand.NewSource(13))
	n := 120
	points := make([][]float64, 4*n)
	faces := make([]mesh.SurfaceElement, n)
	for i := 0; i < n; i++ {
		base := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		for v := 0; v < 4; v++ {
			points[4*i+v] = []float64{
				base[0] + 0.1*rng.Float64(),
				base[1] + 0.1*rng.Float64(),
				base[2] + 0.1*rng.Float64(),
			}
		}
		faces[i] = mesh.SurfaceElement{StdIndex: 0, Nodes: []int{4 * i, 4*i + 1, 4*i + 2, 4*i + 3}}
	}
	m := &mesh.Mesh{
		Dim:              3,
		Points:           points,
		StdBoundaryFaces: []mesh.StandardElement{mustLinearStd(t, utils.Quad, nil)},
		Boundaries:       []mesh.BoundaryMarker{{Name: "wall", BC: utils.BCHeatFlux, Faces: faces}},
	}
	require.NoError(t, m.Validate())

	ext := ExtractWallSurface(m)
	tree := NewElemADT(ext)
	for q := 0; q < 300; q++ {
		p := randomPoint(rng, 3)
		require.InDelta(t, bruteNearest(ext, p), tree.NearestElement(p).Distance, 1e-12)
	}
}

// TestPlanarWallAnalytic checks the textbook case: a flat rectangular wall
// in the XY plane and a point at height h above its interior must be at
// distance exactly h.
func TestPlanarWallAnalytic(t *testing.T) {
	m := &mesh.Mesh{
		Dim:              3,
		Points:           [][]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		StdBoundaryFaces: []mesh.StandardElement{mustLinearStd(t, utils.Quad, nil)},
		Boundaries: []mesh.BoundaryMarker{{
			Name: "plate", BC: utils.BCIsothermal,
			Faces: []mesh.SurfaceElement{{StdIndex: 0, Nodes: []int{0, 1, 2, 3}}},
		}},
	}
	require.NoError(t, m.Validate())
	tree := NewElemADT(ExtractWallSurface(m))

	for _, h := range []float64{1e-6, 0.1, 0.5, 2, 100} {
		res := tree.NearestElement([]float64{0.3, 0.4, h})
		assert.InDelta(t, h, res.Distance, 1e-12*math.Max(1, h))
		assert.Equal(t, 0, res.MarkerID)
		assert.Equal(t, 0, res.ElemID)
		assert.Equal(t, LocalRank, res.RankID)

		// Below the plate is the same distance by symmetry.
		res = tree.NearestElement([]float64{0.3, 0.4, -h})
		assert.InDelta(t, h, res.Distance, 1e-12*math.Max(1, h))
	}
}

func TestNearestElementMetadata(t *testing.T) {
	// Two well separated wall markers; the winner's marker and parent
	// element identify the closest one.
	seg := mustLinearStd(t, utils.Line, nil)
	m := &mesh.Mesh{
		Dim:              2,
		Points:           [][]float64{{0, 0}, {1, 0}, {0, 10}, {1, 10}},
		StdBoundaryFaces: []mesh.StandardElement{seg},
		Boundaries: []mesh.BoundaryMarker{
			{Name: "lower", BC: utils.BCHeatFlux, Faces: []mesh.SurfaceElement{{StdIndex: 0, Nodes: []int{0, 1}}}},
			{Name: "upper", BC: utils.BCIsothermal, Faces: []mesh.SurfaceElement{{StdIndex: 0, Nodes: []int{2, 3}}}},
		},
	}
	require.NoError(t, m.Validate())
	tree := NewElemADT(ExtractWallSurface(m))

	res := tree.NearestElement([]float64{0.5, 1})
	assert.InDelta(t, 1.0, res.Distance, 1e-12)
	assert.Equal(t, 0, res.MarkerID)

	res = tree.NearestElement([]float64{0.5, 9})
	assert.InDelta(t, 1.0, res.Distance, 1e-12)
	assert.Equal(t, 1, res.MarkerID)
}

func TestNearestElementDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := randomTriangleSurface(t, rng, 100)
	tree := NewElemADT(ExtractWallSurface(m))

	queries := make([][]float64, 50)
	for i := range queries {
		queries[i] = randomPoint(rng, 3)
	}
	first := make([]NearestResult, len(queries))
	for i, p := range queries {
		first[i] = tree.NearestElement(p)
	}
	for rep := 0; rep < 3; rep++ {
		for i, p := range queries {
			require.Equal(t, first[i], tree.NearestElement(p), "repeat query must be bit-identical")
		}
	}
}

// TestConcurrentQueries exercises the load-bearing immutability invariant:
// the tree is shared read-only, so concurrent queries need no locking and
// agree with serial ones.
func TestConcurrentQueries(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	m := randomTriangleSurface(t, rng, 150)
	tree := NewElemADT(ExtractWallSurface(m))

	queries := make([][]float64, 200)
	want := make([]NearestResult, len(queries))
	for i := range queries {
		queries[i] = randomPoint(rng, 3)
		want[i] = tree.NearestElement(queries[i])
	}

	got := make([]NearestResult, len(queries))
	g := new(errgroup.Group)
	g.SetLimit(8)
	for i := range queries {
		i := i
		g.Go(func() error {
			got[i] = tree.NearestElement(queries[i])
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, want, got)
}

func TestDistanceBoundedByDomainDiagonal(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	m := randomTriangleSurface(t, rng, 80)
	tree := NewElemADT(ExtractWallSurface(m))

	bounds := tree.Bounds()
	diag := math.Sqrt(bounds.DiagonalSquared(3))
	for q := 0; q < 200; q++ {
		// Query points inside the surface bounding box.
		p := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		d := tree.NearestElement(p).Distance
		require.GreaterOrEqual(t, d, 0.0)
		require.LessOrEqual(t, d, diag)
	}
}
