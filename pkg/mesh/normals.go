package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/pkg/math"
)

// computeFaceGeometry fills in Normal and Centroid for every face.
func (m *Mesh) computeFaceGeometry(mode FaceGeometry) {
	for i := range m.Faces {
		f := &m.Faces[i]
		if mode == FacePolygon {
			f.Normal, f.Centroid = m.polygonNormalCentroid(f)
		} else {
			f.Normal, f.Centroid = m.triangleNormalCentroid(f)
		}
	}
}

// triangleNormalCentroid uses only the targets of the first three half-edges
// of the loop. The normal is (p2-p1)x(p3-p1) and is not unit length; for
// faces of degree > 3 both values approximate the polygon.
func (m *Mesh) triangleNormalCentroid(f *Face) (math.Vec3, math.Vec3) {
	e1 := m.HalfEdges[f.Edge-1]
	e2 := m.HalfEdges[e1.Next-1]
	e3 := m.HalfEdges[e2.Next-1]

	p1 := m.Vertices[e1.Vertex-1].Position
	p2 := m.Vertices[e2.Vertex-1].Position
	p3 := m.Vertices[e3.Vertex-1].Position

	normal := p2.Sub(p1).Cross(p3.Sub(p1))
	centroid := p1.Add(p2).Add(p3).Div(3)
	return normal, centroid
}

// polygonNormalCentroid uses every corner: Newell's method for the normal
// and the vertex mean for the centroid. For triangles the normal equals the
// cross product form.
func (m *Mesh) polygonNormalCentroid(f *Face) (math.Vec3, math.Vec3) {
	var normal, sum math.Vec3
	e := f.Edge
	for i := 0; i < f.Degree; i++ {
		he := m.HalfEdges[e-1]
		cur := m.Vertices[he.Vertex-1].Position
		next := m.Vertices[m.HalfEdges[he.Next-1].Vertex-1].Position

		normal.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		normal.Y += (cur.Z - next.Z) * (cur.X + next.X)
		normal.Z += (cur.X - next.X) * (cur.Y + next.Y)
		sum = sum.Add(cur)

		e = he.Next
	}
	return normal, sum.Div(float32(f.Degree))
}

// assignSuppliedNormals copies vn directions onto vertices using the
// vertex -> normal id mapping. Out-of-range ids leave the vertex without a
// normal.
func (m *Mesh) assignSuppliedNormals(normals []math.Vec3, mapping map[int]int, log *zap.Logger) {
	m.NormalSource = NormalsSupplied
	for i := range m.Vertices {
		v := &m.Vertices[i]
		nid, ok := mapping[int(v.ID)]
		if !ok || nid < 1 || nid > len(normals) {
			log.Warn("supplied normal index out of range",
				zap.Int32("vertex", int32(v.ID)),
				zap.Int("normal", nid),
				zap.Int("normals", len(normals)))
			continue
		}
		v.Normal = normals[nid-1]
		v.HasNormal = true
	}
}

// averageVertexNormals sets each vertex normal to the unweighted mean of the
// normals of its incident faces. Isolated vertices get no normal.
func (m *Mesh) averageVertexNormals(log *zap.Logger) {
	m.NormalSource = NormalsAveraged
	for i := range m.Vertices {
		v := &m.Vertices[i]
		faces := m.vertexFaces[i]
		if len(faces) == 0 {
			log.Debug("isolated vertex has no normal", zap.Int32("vertex", int32(v.ID)))
			continue
		}
		var sum math.Vec3
		for _, fid := range faces {
			sum = sum.Add(m.Faces[fid-1].Normal)
		}
		v.Normal = sum.Div(float32(len(faces)))
		v.HasNormal = true
	}
}
