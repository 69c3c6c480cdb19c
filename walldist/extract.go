// Package walldist computes, for every integration point of a
// finite-element mesh, the shortest distance to the nearest viscous wall
// boundary. The wall surface is first linearized into simple sub-elements,
// a static tree of bounding boxes is built over them, and each integration
// point is resolved with an exact branch-and-bound nearest-element search.
package walldist

import (
	"fmt"
	"strings"

	"github.com/thecaptainuniverse/SU2/mesh"
	"github.com/thecaptainuniverse/SU2/utils"
)

// SubElement is one linear piece of the wall surface: a segment in 2D, a
// triangle or quadrilateral in 3D. Nodes index the extraction's local
// coordinate buffer; MarkerID and ElemID identify the originating boundary
// marker and the (possibly curved) parent surface element.
type SubElement struct {
	Kind     utils.GeometryType
	Nodes    [4]int // Nodes[:NumNodes()] are valid
	MarkerID int
	ElemID   int
}

// NumNodes returns the number of vertices of the sub-element.
func (s *SubElement) NumNodes() int {
	return s.Kind.NumVertices()
}

// Extraction is the flat, linearized representation of the viscous wall
// surface: a deduplicated coordinate buffer holding exactly the mesh points
// that participate in at least one wall sub-element, and the sub-elements
// referencing it.
type Extraction struct {
	Dim       int
	NVertices int
	Coords    []float64 // NVertices*Dim values, point major
	SubElems  []SubElement
}

// Vertex returns the coordinates of local vertex v as a view into the
// coordinate buffer.
func (e *Extraction) Vertex(v int) []float64 {
	return e.Coords[v*e.Dim : (v+1)*e.Dim]
}

// ExtractWallSurface linearizes the boundary faces of every solid-wall
// marker of the mesh. A marker qualifies when its boundary condition is a
// viscous wall; periodic markers are always excluded. When no marker
// qualifies the result is empty, which downstream stages treat as the valid
// "no walls present" case. The mesh is not mutated and no state outlives
// the call.
func ExtractWallSurface(m *mesh.Mesh) *Extraction {
	ext := &Extraction{Dim: m.Dim}

	// First pass: collect the sub-element connectivity in global point
	// numbering, flagging exactly the points some sub-element references.
	meshToSurface := make([]int, len(m.Points))

	for im := range m.Boundaries {
		marker := &m.Boundaries[im]
		if marker.Periodic || !marker.BC.IsViscousWall() {
			continue
		}
		for ie := range marker.Faces {
			face := &marker.Faces[ie]
			std := &m.StdBoundaryFaces[face.StdIndex]
			shape, ok := utils.SurfaceShape(m.Dim, std.NodesPerSub)
			if !ok {
				// Caller contract: boundary descriptors decompose into
				// segments (2D) or triangles/quads (3D).
				panic(fmt.Sprintf("walldist: %d-node sub-faces are not a %dD surface shape", std.NodesPerSub, m.Dim))
			}

			for j := 0; j < std.NSubElems; j++ {
				sub := SubElement{Kind: shape, MarkerID: im, ElemID: ie}
				for k, c := range std.SubFace(j) {
					sub.Nodes[k] = face.Nodes[c] // global for now, remapped below
					meshToSurface[face.Nodes[c]] = 1
				}
				ext.SubElems = append(ext.SubElems, sub)
			}
		}
	}

	// Second pass: assign dense local indices to the flagged points and
	// gather their coordinates.
	for i := range m.Points {
		if meshToSurface[i] != 0 {
			meshToSurface[i] = ext.NVertices
			ext.NVertices++
			ext.Coords = append(ext.Coords, m.Points[i][:m.Dim]...)
		}
	}

	// Remap the sub-element connectivity from global point numbering to the
	// local coordinate buffer.
	for i := range ext.SubElems {
		sub := &ext.SubElems[i]
		for k := 0; k < sub.NumNodes(); k++ {
			sub.Nodes[k] = meshToSurface[sub.Nodes[k]]
		}
	}

	return ext
}

// Verify checks the extraction invariants: every sub-element references
// only points present in the local coordinate buffer, and the buffer holds
// exactly the points referenced by at least one sub-element.
func (e *Extraction) Verify() error {
	if len(e.Coords) != e.NVertices*e.Dim {
		return fmt.Errorf("coordinate buffer has %d values, want %d for %d vertices",
			len(e.Coords), e.NVertices*e.Dim, e.NVertices)
	}
	used := make([]bool, e.NVertices)
	for i := range e.SubElems {
		sub := &e.SubElems[i]
		for k := 0; k < sub.NumNodes(); k++ {
			v := sub.Nodes[k]
			if v < 0 || v >= e.NVertices {
				return fmt.Errorf("sub-element %d references vertex %d (buffer has %d)", i, v, e.NVertices)
			}
			used[v] = true
		}
	}
	for v, u := range used {
		if !u {
			return fmt.Errorf("vertex %d is in the coordinate buffer but unreferenced", v)
		}
	}
	return nil
}

// String returns a short summary of the extracted surface.
func (e *Extraction) String() string {
	var counts [3]int
	for i := range e.SubElems {
		switch e.SubElems[i].Kind {
		case utils.Line:
			counts[0]++
		case utils.Tri:
			counts[1]++
		case utils.Quad:
			counts[2]++
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "wall surface: %d vertices, %d sub-elements", e.NVertices, len(e.SubElems))
	fmt.Fprintf(&sb, " (%d segments, %d triangles, %d quads)", counts[0], counts[1], counts[2])
	return sb.String()
}
