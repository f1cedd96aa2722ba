package geom

// Face is a triangle given as three indices into a mesh's point array.
type Face [3]int

// Valid reports whether every index is in [0, n) and the three are distinct.
func (f Face) Valid(n int) bool {
	for _, i := range f {
		if i < 0 || i >= n {
			return false
		}
	}
	return f[0] != f[1] && f[1] != f[2] && f[0] != f[2]
}

func validFaces(faces []Face, n int) bool {
	for _, f := range faces {
		if !f.Valid(n) {
			return false
		}
	}
	return true
}

// TriangleMesh2D owns a point array and a face array. It becomes valid only
// once faces are set after points; replacing the points drops the faces.
//
// Meshes are shared by pointer between consumers (topology tables, spatial
// indices, exporters). None of them mutate it.
type TriangleMesh2D struct {
	points []Point2D
	faces  []Face
	valid  bool
}

func NewTriangleMesh2D() *TriangleMesh2D {
	return &TriangleMesh2D{}
}

// SetPoints copies points into the mesh and clears any faces.
func (m *TriangleMesh2D) SetPoints(points []Point2D) {
	m.points = make([]Point2D, len(points))
	copy(m.points, points)
	m.faces = nil
	m.valid = false
}

// SetFaces installs faces if every index refers to a point and no face repeats
// an index. On failure the mesh is left faceless and invalid.
func (m *TriangleMesh2D) SetFaces(faces []Face) bool {
	if !validFaces(faces, len(m.points)) {
		m.faces = nil
		m.valid = false
		return false
	}
	m.faces = make([]Face, len(faces))
	copy(m.faces, faces)
	m.valid = true
	return true
}

func (m *TriangleMesh2D) IsValid() bool {
	return m.valid
}

func (m *TriangleMesh2D) PointCount() int {
	return len(m.points)
}

func (m *TriangleMesh2D) FaceCount() int {
	return len(m.faces)
}

func (m *TriangleMesh2D) Point(i int) Point2D {
	return m.points[i]
}

// Points returns the point array. Callers must not modify it.
func (m *TriangleMesh2D) Points() []Point2D {
	return m.points
}

func (m *TriangleMesh2D) Face(i int) Face {
	return m.faces[i]
}

// Faces returns the face array. Callers must not modify it.
func (m *TriangleMesh2D) Faces() []Face {
	return m.faces
}

func (m *TriangleMesh2D) Triangle(i int) Triangle2D {
	f := m.faces[i]
	return NewTriangle2D(m.points[f[0]], m.points[f[1]], m.points[f[2]])
}

// Area sums the unsigned face areas.
func (m *TriangleMesh2D) Area() float64 {
	var area float64
	for i := range m.faces {
		area += m.Triangle(i).Area()
	}
	return area
}

func (m *TriangleMesh2D) BBox() BBox2D {
	return BBoxOf(m.points...)
}

// TriangleMesh3D is the spatial counterpart of TriangleMesh2D.
type TriangleMesh3D struct {
	points []Point3D
	faces  []Face
	valid  bool
}

func NewTriangleMesh3D() *TriangleMesh3D {
	return &TriangleMesh3D{}
}

func (m *TriangleMesh3D) SetPoints(points []Point3D) {
	m.points = make([]Point3D, len(points))
	copy(m.points, points)
	m.faces = nil
	m.valid = false
}

func (m *TriangleMesh3D) SetFaces(faces []Face) bool {
	if !validFaces(faces, len(m.points)) {
		m.faces = nil
		m.valid = false
		return false
	}
	m.faces = make([]Face, len(faces))
	copy(m.faces, faces)
	m.valid = true
	return true
}

func (m *TriangleMesh3D) IsValid() bool {
	return m.valid
}

func (m *TriangleMesh3D) PointCount() int {
	return len(m.points)
}

func (m *TriangleMesh3D) FaceCount() int {
	return len(m.faces)
}

func (m *TriangleMesh3D) Point(i int) Point3D {
	return m.points[i]
}

func (m *TriangleMesh3D) Face(i int) Face {
	return m.faces[i]
}

// FaceArea is half the norm of the face normal.
func (m *TriangleMesh3D) FaceArea(i int) float64 {
	f := m.faces[i]
	a, b, c := m.points[f[0]], m.points[f[1]], m.points[f[2]]
	return b.Sub(a).Cross(c.Sub(a)).Norm() / 2
}

func (m *TriangleMesh3D) Area() float64 {
	var area float64
	for i := range m.faces {
		area += m.FaceArea(i)
	}
	return area
}

func (m *TriangleMesh3D) BBox() BBox3D {
	b := NewBBox3D()
	for _, p := range m.points {
		b.Add(p)
	}
	return b
}

// Flatten projects the mesh onto the XY plane, keeping the faces.
func (m *TriangleMesh3D) Flatten() *TriangleMesh2D {
	flat := NewTriangleMesh2D()
	points := make([]Point2D, len(m.points))
	for i, p := range m.points {
		points[i] = p.XY()
	}
	flat.SetPoints(points)
	if m.valid {
		flat.SetFaces(m.faces)
	}
	return flat
}
