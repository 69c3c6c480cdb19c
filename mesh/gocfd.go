package mesh

import (
	"fmt"
	"sort"

	gcmesh "github.com/notargets/gocfd/DG3D/mesh"
	"github.com/notargets/gocfd/DG3D/mesh/readers"

	"github.com/thecaptainuniverse/SU2/utils"
)

// FromGocfd converts a gocfd tetrahedral volume mesh into the wall-distance
// mesh model. volStd is the descriptor shared by every volume element (a
// linear tet and its quadrature rule); bdryStd holds one descriptor per
// boundary-face node count (e.g. linear triangles and quads).
//
// Boundary markers are derived from the gocfd mesh's named boundary groups:
// each tag name is classified with utils.ParseBCName, so groups named
// "wall", "noslip" or "isothermal" become viscous walls and "periodic"
// groups are flagged periodic. Groups whose faces carry no node list (some
// reader formats track only the parent element and face) are rejected.
func FromGocfd(gm *gcmesh.Mesh, volStd StandardElement, bdryStd []StandardElement) (*Mesh, error) {
	if err := volStd.validate(); err != nil {
		return nil, fmt.Errorf("volume standard element: %v", err)
	}

	points := make([][]float64, len(gm.Vertices))
	for i := range gm.Vertices {
		p := make([]float64, 3)
		for k := 0; k < 3; k++ {
			p[k] = gm.Vertices[i][k]
		}
		points[i] = p
	}

	elems := make([]VolumeElement, len(gm.EtoV))
	for i, ev := range gm.EtoV {
		if len(ev) != volStd.NDOFs {
			return nil, fmt.Errorf("element %d has %d vertices, standard element expects %d", i, len(ev), volStd.NDOFs)
		}
		nodes := make([]int, len(ev))
		copy(nodes, ev)
		elems[i] = VolumeElement{StdIndex: 0, Nodes: nodes}
	}

	stdByArity := make(map[int]int, len(bdryStd))
	for i := range bdryStd {
		stdByArity[bdryStd[i].NDOFs] = i
	}

	names := make([]string, 0, len(gm.BoundaryElements))
	for name := range gm.BoundaryElements {
		names = append(names, name)
	}
	sort.Strings(names) // marker order independent of map iteration

	markers := make([]BoundaryMarker, 0, len(names))
	for _, name := range names {
		bc := utils.ParseBCName(name)
		marker := BoundaryMarker{Name: name, BC: bc, Periodic: bc == utils.BCPeriodic}
		for ie, be := range gm.BoundaryElements[name] {
			if len(be.Nodes) == 0 {
				return nil, fmt.Errorf("marker %s face %d carries no node list", name, ie)
			}
			si, ok := stdByArity[len(be.Nodes)]
			if !ok {
				return nil, fmt.Errorf("marker %s face %d: no standard element with %d nodes", name, ie, len(be.Nodes))
			}
			nodes := make([]int, len(be.Nodes))
			copy(nodes, be.Nodes)
			marker.Faces = append(marker.Faces, SurfaceElement{StdIndex: si, Nodes: nodes})
		}
		markers = append(markers, marker)
	}

	m := &Mesh{
		Dim:              3,
		Points:           points,
		StdVolumes:       []StandardElement{volStd},
		StdBoundaryFaces: bdryStd,
		VolElems:         elems,
		Boundaries:       markers,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadVolumeMesh reads a tetrahedral mesh file through the gocfd readers
// and converts it with FromGocfd.
func ReadVolumeMesh(meshfile string, volStd StandardElement, bdryStd []StandardElement) (*Mesh, error) {
	gm, err := readers.ReadMeshFile(meshfile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", meshfile, err)
	}
	return FromGocfd(gm, volStd, bdryStd)
}
