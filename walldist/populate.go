package walldist

import (
	"fmt"
	"runtime"

	"github.com/thecaptainuniverse/SU2/mesh"
	"golang.org/x/sync/errgroup"
)

// EntityRange addresses one entity's contiguous slice of a flat distance
// buffer: Count integration-point distances starting at Offset.
type EntityRange struct {
	Offset, Count int
}

// CategoryField holds the wall distances of one consumer category (volume
// elements, interior matching faces or boundary faces) in a single flat
// buffer, allocated exactly once and addressed per entity through disjoint
// offset/count ranges in traversal order.
type CategoryField struct {
	Distances []float64
	Ranges    []EntityRange
}

// Entity returns entity i's distances as a non-owning view into the flat
// buffer, valid for the lifetime of the field.
func (c *CategoryField) Entity(i int) []float64 {
	r := c.Ranges[i]
	return c.Distances[r.Offset : r.Offset+r.Count]
}

// Verify checks the buffer sizing invariant: the per-entity ranges tile the
// flat buffer exactly, contiguously and in order.
func (c *CategoryField) Verify() error {
	next := 0
	for i, r := range c.Ranges {
		if r.Offset != next {
			return fmt.Errorf("entity %d starts at offset %d, want %d", i, r.Offset, next)
		}
		if r.Count < 0 {
			return fmt.Errorf("entity %d has negative count %d", i, r.Count)
		}
		next += r.Count
	}
	if next != len(c.Distances) {
		return fmt.Errorf("ranges cover %d slots, buffer has %d", next, len(c.Distances))
	}
	return nil
}

// DistanceField holds the computed wall distances for every integration
// point of the mesh, one flat buffer per consumer category. It owns the
// buffers for the lifetime of the mesh.
type DistanceField struct {
	Volume   CategoryField
	Faces    CategoryField
	Boundary CategoryField

	// boundaryFace maps (marker, face) to the entity index in Boundary.
	// Periodic markers are not physical boundaries and have no entry.
	boundaryFace [][]int
}

// BoundaryFace returns the distances of one boundary face addressed by its
// marker and face index, or nil for faces of periodic markers.
func (d *DistanceField) BoundaryFace(marker, face int) []float64 {
	if d.boundaryFace[marker] == nil {
		return nil
	}
	return d.Boundary.Entity(d.boundaryFace[marker][face])
}

// Verify checks the sizing invariants of all three categories.
func (d *DistanceField) Verify() error {
	if err := d.Volume.Verify(); err != nil {
		return fmt.Errorf("volume field: %v", err)
	}
	if err := d.Faces.Verify(); err != nil {
		return fmt.Errorf("matching face field: %v", err)
	}
	if err := d.Boundary.Verify(); err != nil {
		return fmt.Errorf("boundary field: %v", err)
	}
	return nil
}

// entity is one unit of population work: interpolate the integration points
// of (std, nodes) and fill the entity's buffer slice. zero forces the fixed
// zero-distance policy (the entity lies on a viscous wall itself).
type entity struct {
	std   *mesh.StandardElement
	nodes []int
	zero  bool
}

// ComputeWallDistances extracts the viscous wall surface of the mesh,
// builds the search tree over it and populates the wall distance of every
// integration point of every owned volume element, interior matching face
// and boundary face.
//
// A mesh without wall markers is not an error: all distances are zero.
func ComputeWallDistances(m *mesh.Mesh) (*DistanceField, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("walldist: invalid mesh: %v", err)
	}

	surf := ExtractWallSurface(m)
	tree := NewElemADT(surf)

	df := &DistanceField{}

	ents := make([]entity, 0, len(m.VolElems))
	for i := range m.VolElems {
		e := &m.VolElems[i]
		ents = append(ents, entity{std: &m.StdVolumes[e.StdIndex], nodes: e.Nodes})
	}
	df.Volume = populateCategory(m, tree, ents)

	ents = ents[:0]
	for i := range m.MatchingFaces {
		f := &m.MatchingFaces[i]
		ents = append(ents, entity{std: &m.StdMatchingFaces[f.StdIndex], nodes: f.Nodes})
	}
	df.Faces = populateCategory(m, tree, ents)

	// Boundary faces, periodic markers excluded: they are bookkeeping
	// artifacts, not physical boundaries. Faces of a viscous wall marker
	// are at zero distance by definition and skip the geometric query,
	// which would be ill-conditioned that close to the surface.
	ents = ents[:0]
	df.boundaryFace = make([][]int, len(m.Boundaries))
	for im := range m.Boundaries {
		marker := &m.Boundaries[im]
		if marker.Periodic {
			continue
		}
		onWall := marker.BC.IsViscousWall()
		df.boundaryFace[im] = make([]int, len(marker.Faces))
		for ie := range marker.Faces {
			f := &marker.Faces[ie]
			df.boundaryFace[im][ie] = len(ents)
			ents = append(ents, entity{std: &m.StdBoundaryFaces[f.StdIndex], nodes: f.Nodes, zero: onWall})
		}
	}
	df.Boundary = populateCategory(m, tree, ents)

	return df, nil
}

// populateCategory sizes one category's flat buffer, assigns each entity
// its disjoint range in traversal order and fills the distances in
// parallel. The per-entity work items are independent and write disjoint
// slices, so no synchronization is needed beyond the final wait.
func populateCategory(m *mesh.Mesh, tree *ElemADT, ents []entity) CategoryField {
	c := CategoryField{Ranges: make([]EntityRange, len(ents))}
	total := 0
	for i := range ents {
		nInt := ents[i].std.NIntegration
		c.Ranges[i] = EntityRange{Offset: total, Count: nInt}
		total += nInt
	}
	c.Distances = make([]float64, total)

	// With no walls present every distance is zero; the freshly allocated
	// buffer already holds exactly that.
	if tree.IsEmpty() || total == 0 {
		return c
	}

	nw := runtime.GOMAXPROCS(0)
	if nw > len(ents) {
		nw = len(ents)
	}
	g := new(errgroup.Group)
	g.SetLimit(nw)
	for w := 0; w < nw; w++ {
		w := w
		g.Go(func() error {
			var coor []float64
			for i := w; i < len(ents); i += nw {
				e := &ents[i]
				if e.zero || e.std.NIntegration == 0 {
					continue
				}
				need := e.std.NIntegration * m.Dim
				if cap(coor) < need {
					coor = make([]float64, need)
				}
				coor = coor[:need]
				e.std.IntegrationCoords(coor, m.Dim, e.nodes, m.Points)

				dst := c.Entity(i)
				for ip := 0; ip < e.std.NIntegration; ip++ {
					res := tree.NearestElement(coor[ip*m.Dim : (ip+1)*m.Dim])
					dst[ip] = res.Distance
				}
			}
			return nil
		})
	}
	// Workers are pure computation over disjoint slices and cannot fail.
	_ = g.Wait()

	return c
}
