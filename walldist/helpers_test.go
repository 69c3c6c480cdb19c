package walldist

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thecaptainuniverse/SU2/geometry"
	"github.com/thecaptainuniverse/SU2/mesh"
	"github.com/thecaptainuniverse/SU2/utils"
	"gonum.org/v1/gonum/mat"
)

// vertexBasis places one integration point on every node.
func vertexBasis(n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		b.Set(i, i, 1)
	}
	return b
}

// centroidBasis places a single integration point at the element centroid.
func centroidBasis(n int) *mat.Dense {
	row := make([]float64, n)
	for i := range row {
		row[i] = 1 / float64(n)
	}
	return mat.NewDense(1, n, row)
}

func mustLinearStd(t *testing.T, shape utils.GeometryType, basis *mat.Dense) mesh.StandardElement {
	t.Helper()
	std, err := mesh.NewLinearStandardElement(shape, basis)
	require.NoError(t, err)
	return std
}

// mustUnsubdividedStd builds a descriptor that carries a quadrature rule but
// no surface subdivision (volume elements and matching faces).
func mustUnsubdividedStd(t *testing.T, shape utils.GeometryType, nDOFs int, basis *mat.Dense) mesh.StandardElement {
	t.Helper()
	std, err := mesh.NewStandardElement(shape, nDOFs, 0, nil, basis)
	require.NoError(t, err)
	return std
}

// randomTriangleSurface builds a 3D mesh whose only marker is a viscous wall
// made of n independent random triangles inside the unit cube.
func randomTriangleSurface(t *testing.T, rng *rand.Rand, n int) *mesh.Mesh {
	points := make([][]float64, 3*n)
	faces := make([]mesh.SurfaceElement, n)
	for i := 0; i < n; i++ {
		for v := 0; v < 3; v++ {
			points[3*i+v] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		}
		faces[i] = mesh.SurfaceElement{StdIndex: 0, Nodes: []int{3 * i, 3*i + 1, 3*i + 2}}
	}
	m := &mesh.Mesh{
		Dim:              3,
		Points:           points,
		StdBoundaryFaces: []mesh.StandardElement{mustLinearStd(t, utils.Tri, centroidBasis(3))},
		Boundaries: []mesh.BoundaryMarker{{
			Name: "wall", BC: utils.BCHeatFlux, Faces: faces,
		}},
	}
	require.NoError(t, m.Validate())
	return m
}

// randomSegmentSurface builds a 2D mesh whose only marker is a viscous wall
// made of n independent random segments inside the unit square.
func randomSegmentSurface(t *testing.T, rng *rand.Rand, n int) *mesh.Mesh {
	points := make([][]float64, 2*n)
	faces := make([]mesh.SurfaceElement, n)
	for i := 0; i < n; i++ {
		for v := 0; v < 2; v++ {
			points[2*i+v] = []float64{rng.Float64(), rng.Float64()}
		}
		faces[i] = mesh.SurfaceElement{StdIndex: 0, Nodes: []int{2 * i, 2*i + 1}}
	}
	m := &mesh.Mesh{
		Dim:              2,
		Points:           points,
		StdBoundaryFaces: []mesh.StandardElement{mustLinearStd(t, utils.Line, centroidBasis(2))},
		Boundaries: []mesh.BoundaryMarker{{
			Name: "wall", BC: utils.BCIsothermal, Faces: faces,
		}},
	}
	require.NoError(t, m.Validate())
	return m
}

// bruteNearest computes the nearest-element distance by exhaustively
// checking every sub-element. It is the correctness oracle for the pruned
// tree search.
func bruteNearest(ext *Extraction, p []float64) float64 {
	best := math.Inf(1)
	for i := range ext.SubElems {
		sub := &ext.SubElems[i]
		var d2 float64
		switch sub.Kind {
		case utils.Line:
			d2 = geometry.PointSegmentDistSquared(ext.Dim, p,
				ext.Vertex(sub.Nodes[0]), ext.Vertex(sub.Nodes[1]))
		case utils.Tri:
			d2 = geometry.PointTriangleDistSquared(p,
				ext.Vertex(sub.Nodes[0]), ext.Vertex(sub.Nodes[1]), ext.Vertex(sub.Nodes[2]))
		case utils.Quad:
			d2 = geometry.PointQuadDistSquared(p,
				ext.Vertex(sub.Nodes[0]), ext.Vertex(sub.Nodes[1]),
				ext.Vertex(sub.Nodes[2]), ext.Vertex(sub.Nodes[3]))
		}
		if d2 < best {
			best = d2
		}
	}
	return math.Sqrt(best)
}

// randomPoint returns a point in [-0.25, 1.25)^dim so that queries fall
// both inside and outside the unit-cube geometry.
func randomPoint(rng *rand.Rand, dim int) []float64 {
	p := make([]float64, dim)
	for k := range p {
		p[k] = 1.5*rng.Float64() - 0.25
	}
	return p
}
