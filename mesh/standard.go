package mesh

import (
	"fmt"

	"github.com/thecaptainuniverse/SU2/utils"
	"gonum.org/v1/gonum/mat"
)

// StandardElement describes one grid/geometry variant of an element shape:
// how many coordinate-defining nodes it has, how it decomposes into linear
// sub-faces, and the quadrature rule used to locate its integration points.
// The basis-function machinery that produces these descriptors lives in the
// surrounding FEM collaborator; the wall-distance subsystem only consumes
// them.
type StandardElement struct {
	Shape utils.GeometryType
	NDOFs int // coordinate-defining nodes per element

	// Linear subdivision of the element surface. SubConn maps each
	// sub-face vertex to an element-local node index; it holds
	// NSubElems*NodesPerSub entries, sub-face major. Nil for shapes that
	// are never subdivided (volume elements).
	NSubElems   int
	NodesPerSub int
	SubConn     []int

	// Quadrature rule: Basis is the NIntegration×NDOFs matrix of
	// basis-function values at the integration points, so that row i dotted
	// with the nodal coordinates yields integration point i.
	NIntegration int
	Basis        *mat.Dense
}

// NewStandardElement builds a validated descriptor. subConn may be nil when
// the shape is never linearly subdivided; basis may be nil when the shape
// carries no quadrature rule (it then contributes zero integration points).
func NewStandardElement(shape utils.GeometryType, nDOFs, nodesPerSub int, subConn []int, basis *mat.Dense) (StandardElement, error) {
	s := StandardElement{
		Shape:       shape,
		NDOFs:       nDOFs,
		NodesPerSub: nodesPerSub,
		SubConn:     subConn,
		Basis:       basis,
	}
	if subConn != nil {
		if nodesPerSub <= 0 || len(subConn)%nodesPerSub != 0 {
			return StandardElement{}, fmt.Errorf("subdivision connectivity length %d is not a multiple of %d nodes per sub-face", len(subConn), nodesPerSub)
		}
		s.NSubElems = len(subConn) / nodesPerSub
	}
	if basis != nil {
		s.NIntegration, _ = basis.Dims()
	}
	if err := s.validate(); err != nil {
		return StandardElement{}, err
	}
	return s, nil
}

// NewLinearStandardElement builds the descriptor of a linear (first-order)
// surface shape: a single sub-face whose connectivity is the identity.
func NewLinearStandardElement(shape utils.GeometryType, basis *mat.Dense) (StandardElement, error) {
	n := shape.NumVertices()
	conn := make([]int, n)
	for i := range conn {
		conn[i] = i
	}
	return NewStandardElement(shape, n, n, conn, basis)
}

func (s *StandardElement) validate() error {
	if s.NDOFs <= 0 {
		return fmt.Errorf("invalid node count %d", s.NDOFs)
	}
	if s.SubConn != nil {
		if s.NodesPerSub < 2 || s.NodesPerSub > 4 {
			return fmt.Errorf("invalid sub-face arity %d (want 2, 3 or 4)", s.NodesPerSub)
		}
		if len(s.SubConn) != s.NSubElems*s.NodesPerSub {
			return fmt.Errorf("subdivision connectivity has %d entries, want %d", len(s.SubConn), s.NSubElems*s.NodesPerSub)
		}
		for _, c := range s.SubConn {
			if c < 0 || c >= s.NDOFs {
				return fmt.Errorf("subdivision connectivity index %d out of range (%d nodes)", c, s.NDOFs)
			}
		}
	}
	if s.Basis != nil {
		r, c := s.Basis.Dims()
		if c != s.NDOFs {
			return fmt.Errorf("basis matrix is %d×%d, want %d columns for %d nodes", r, c, s.NDOFs, s.NDOFs)
		}
		if r != s.NIntegration {
			return fmt.Errorf("basis matrix has %d rows, descriptor claims %d integration points", r, s.NIntegration)
		}
	}
	return nil
}

// SubFace returns the element-local node indices of sub-face j.
func (s *StandardElement) SubFace(j int) []int {
	return s.SubConn[j*s.NodesPerSub : (j+1)*s.NodesPerSub]
}

// IntegrationCoords interpolates the physical coordinates of every
// integration point from the nodal coordinates: dst receives
// NIntegration*dim values, point major. dst must be pre-sized by the
// caller; points is the global coordinate table and nodes the entity's
// global node indices.
func (s *StandardElement) IntegrationCoords(dst []float64, dim int, nodes []int, points [][]float64) {
	for i := 0; i < s.NIntegration; i++ {
		for j := 0; j < dim; j++ {
			var c float64
			for k := 0; k < s.NDOFs; k++ {
				c += s.Basis.At(i, k) * points[nodes[k]][j]
			}
			dst[i*dim+j] = c
		}
	}
}
