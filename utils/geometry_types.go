package utils

// GeometryType identifies the shape of an element or linear sub-element
type GeometryType uint8

const (
	// 3D element types
	Tet     GeometryType = iota // Tetrahedron
	Hex                         // Hexahedron
	Prism                       // Triangular prism
	Pyramid                     // Square-based pyramid

	// 2D element types
	Tri  // Triangle
	Quad // Quadrilateral

	// 1D element type
	Line // Line segment
)

// String returns the string representation of a GeometryType
func (g GeometryType) String() string {
	switch g {
	case Tet:
		return "Tet"
	case Hex:
		return "Hex"
	case Prism:
		return "Prism"
	case Pyramid:
		return "Pyramid"
	case Tri:
		return "Tri"
	case Quad:
		return "Quad"
	case Line:
		return "Line"
	}
	return "Unknown"
}

// NumVertices returns the number of corner vertices that define the shape.
func (g GeometryType) NumVertices() int {
	switch g {
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	case Tri:
		return 3
	case Quad:
		return 4
	case Line:
		return 2
	}
	return 0
}

// SurfaceShape returns the linear sub-element shape with n vertices living
// on a surface of the given spatial dimension: segments for dim 2,
// triangles and quadrilaterals for dim 3. ok is false for any other
// combination.
func SurfaceShape(dim, n int) (shape GeometryType, ok bool) {
	switch {
	case dim == 2 && n == 2:
		return Line, true
	case dim == 3 && n == 3:
		return Tri, true
	case dim == 3 && n == 4:
		return Quad, true
	}
	return 0, false
}
