// Package mesh holds the finite-element mesh model consumed by the
// wall-distance subsystem: the global point table, the owned volume
// elements and interior matching faces, the boundary markers with their
// surface elements, and the standard-element descriptor tables that carry
// each shape's linear subdivision pattern and quadrature rule.
package mesh

import (
	"fmt"

	"github.com/thecaptainuniverse/SU2/utils"
)

// VolumeElement is an owned volume element: its standard-element index and
// the global indices of its coordinate-defining nodes.
type VolumeElement struct {
	StdIndex int
	Nodes    []int
}

// MatchingFace is an owned interior face matching two volume elements. The
// nodes are the grid DOFs of side 0, which define the face geometry.
type MatchingFace struct {
	StdIndex int
	Nodes    []int
}

// SurfaceElement is a (possibly curved, high-order) boundary face belonging
// to a marker.
type SurfaceElement struct {
	StdIndex int
	Nodes    []int
}

// BoundaryMarker is a named group of boundary faces sharing a boundary
// condition. Periodic markers are bookkeeping artifacts of the mesh
// construction, not physical boundaries, and are flagged separately from
// their BC classification.
type BoundaryMarker struct {
	Name     string
	BC       utils.BCType
	Periodic bool
	Faces    []SurfaceElement
}

// Mesh is a single worker's view of its local mesh partition.
type Mesh struct {
	Dim    int
	Points [][]float64 // global point coordinate table, Points[i] has Dim entries

	// Standard-element descriptor tables, indexed by the StdIndex of the
	// corresponding entity kind.
	StdVolumes       []StandardElement
	StdMatchingFaces []StandardElement
	StdBoundaryFaces []StandardElement

	VolElems      []VolumeElement
	MatchingFaces []MatchingFace
	Boundaries    []BoundaryMarker
}

// Validate checks the caller-side contract the wall-distance subsystem
// relies on: every standard-element index resolves, every connectivity
// entry addresses a valid node or point, every quadrature basis matrix has
// consistent dimensions, and every boundary-face descriptor carries a
// linear subdivision into shapes valid for the mesh dimension.
func (m *Mesh) Validate() error {
	if m.Dim != 2 && m.Dim != 3 {
		return fmt.Errorf("unsupported spatial dimension %d", m.Dim)
	}
	for i, p := range m.Points {
		if len(p) < m.Dim {
			return fmt.Errorf("point %d has %d coordinates, mesh dimension is %d", i, len(p), m.Dim)
		}
	}
	for i := range m.StdVolumes {
		if err := m.StdVolumes[i].validate(); err != nil {
			return fmt.Errorf("standard volume element %d: %v", i, err)
		}
	}
	for i := range m.StdMatchingFaces {
		if err := m.StdMatchingFaces[i].validate(); err != nil {
			return fmt.Errorf("standard matching face %d: %v", i, err)
		}
	}
	for i := range m.StdBoundaryFaces {
		std := &m.StdBoundaryFaces[i]
		if err := std.validate(); err != nil {
			return fmt.Errorf("standard boundary face %d: %v", i, err)
		}
		if std.SubConn == nil {
			return fmt.Errorf("standard boundary face %d has no linear subdivision pattern", i)
		}
		if _, ok := utils.SurfaceShape(m.Dim, std.NodesPerSub); !ok {
			return fmt.Errorf("standard boundary face %d: %d-node sub-faces are not a %dD surface shape",
				i, std.NodesPerSub, m.Dim)
		}
	}

	for l, e := range m.VolElems {
		if err := m.validateEntity(e.StdIndex, e.Nodes, m.StdVolumes); err != nil {
			return fmt.Errorf("volume element %d: %v", l, err)
		}
	}
	for l, f := range m.MatchingFaces {
		if err := m.validateEntity(f.StdIndex, f.Nodes, m.StdMatchingFaces); err != nil {
			return fmt.Errorf("matching face %d: %v", l, err)
		}
	}
	for im := range m.Boundaries {
		for l, f := range m.Boundaries[im].Faces {
			if err := m.validateEntity(f.StdIndex, f.Nodes, m.StdBoundaryFaces); err != nil {
				return fmt.Errorf("marker %d face %d: %v", im, l, err)
			}
		}
	}
	return nil
}

func (m *Mesh) validateEntity(stdIndex int, nodes []int, table []StandardElement) error {
	if stdIndex < 0 || stdIndex >= len(table) {
		return fmt.Errorf("standard element index %d out of range (table size %d)", stdIndex, len(table))
	}
	std := &table[stdIndex]
	if len(nodes) != std.NDOFs {
		return fmt.Errorf("has %d nodes, standard element expects %d", len(nodes), std.NDOFs)
	}
	for _, n := range nodes {
		if n < 0 || n >= len(m.Points) {
			return fmt.Errorf("node index %d out of range (%d points)", n, len(m.Points))
		}
	}
	return nil
}
