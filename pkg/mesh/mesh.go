// Package mesh builds an indexed half-edge mesh from parsed polygon data.
//
// Vertices, faces and half-edges live in flat slices and refer to each other
// by 1-based ids. Id 0 means "none" for every element kind, so a zero
// HalfEdge.Pair is an unpaired (boundary or non-manifold) half-edge.
package mesh

import (
	"sort"

	"github.com/Faultbox/objmesh/pkg/math"
)

// VertexID identifies a vertex. Ids are dense, 1-based and follow file order.
type VertexID int32

// FaceID identifies a face. Ids are dense, 1-based and follow file order.
type FaceID int32

// HalfEdgeID identifies a half-edge. Ids are dense, 1-based and follow
// creation order.
type HalfEdgeID int32

// Sentinel "none" ids.
const (
	NoVertex   VertexID   = 0
	NoFace     FaceID     = 0
	NoHalfEdge HalfEdgeID = 0
)

// Vertex is a mesh corner point.
type Vertex struct {
	ID        VertexID
	Position  math.Vec3
	Normal    math.Vec3  // Valid when HasNormal
	HasNormal bool       // False for isolated vertices and bad supplied indices
	Edge      HalfEdgeID // One outgoing half-edge, NoHalfEdge if isolated
}

// Face is a polygon bounded by a closed loop of half-edges.
type Face struct {
	ID       FaceID
	Edge     HalfEdgeID // First half-edge created for the face
	Degree   int        // Number of half-edges in the loop
	Normal   math.Vec3  // Not unit length
	Centroid math.Vec3
}

// HalfEdge is a directed edge owned by one face.
type HalfEdge struct {
	ID     HalfEdgeID
	Vertex VertexID // Target vertex
	Face   FaceID
	Next   HalfEdgeID
	Prev   HalfEdgeID
	Pair   HalfEdgeID // Opposite half-edge, NoHalfEdge on boundary
}

// EdgeKey is an ordered pair of vertex ids. Directed lookups use
// (tail, head); undirected lookups use (min, max).
type EdgeKey struct {
	A, B VertexID
}

// Undirected returns the key with the smaller id first.
func (k EdgeKey) Undirected() EdgeKey {
	if k.A > k.B {
		return EdgeKey{k.B, k.A}
	}
	return k
}

// NormalSource records how vertex normals were resolved.
type NormalSource int

const (
	NormalsAveraged NormalSource = iota // Mean of incident face normals
	NormalsSupplied                     // Taken from vn lines
)

// String returns a human-readable source name.
func (s NormalSource) String() string {
	if s == NormalsSupplied {
		return "supplied"
	}
	return "averaged"
}

// Mesh owns every vertex, face and half-edge of one parse result.
type Mesh struct {
	Vertices  []Vertex   // Index = id - 1
	Faces     []Face     // Index = id - 1
	HalfEdges []HalfEdge // Index = id - 1, creation order

	FirstVertex VertexID

	// Min and Max are the bounding corners after normalization.
	Min, Max math.Vec3

	Normalization Normalization
	NormalSource  NormalSource

	vertexFaces [][]FaceID               // Incident faces per vertex, one entry per occurrence
	fans        map[EdgeKey][]HalfEdgeID // Half-edges per undirected edge
}

// Vertex returns the vertex with the given id, or nil.
func (m *Mesh) Vertex(id VertexID) *Vertex {
	if id < 1 || int(id) > len(m.Vertices) {
		return nil
	}
	return &m.Vertices[id-1]
}

// Face returns the face with the given id, or nil.
func (m *Mesh) Face(id FaceID) *Face {
	if id < 1 || int(id) > len(m.Faces) {
		return nil
	}
	return &m.Faces[id-1]
}

// HalfEdge returns the half-edge with the given id, or nil.
func (m *Mesh) HalfEdge(id HalfEdgeID) *HalfEdge {
	if id < 1 || int(id) > len(m.HalfEdges) {
		return nil
	}
	return &m.HalfEdges[id-1]
}

// Origin returns the tail vertex of a half-edge, which is the target of its
// predecessor in the face loop.
func (m *Mesh) Origin(id HalfEdgeID) VertexID {
	he := m.HalfEdge(id)
	if he == nil {
		return NoVertex
	}
	return m.HalfEdges[he.Prev-1].Vertex
}

// Endpoints returns the (tail, head) vertex ids of a half-edge.
func (m *Mesh) Endpoints(id HalfEdgeID) EdgeKey {
	he := m.HalfEdge(id)
	if he == nil {
		return EdgeKey{}
	}
	return EdgeKey{m.Origin(id), he.Vertex}
}

// FaceLoop returns the half-edges of a face in loop order, starting at the
// face's representative half-edge.
func (m *Mesh) FaceLoop(id FaceID) []HalfEdgeID {
	f := m.Face(id)
	if f == nil {
		return nil
	}
	loop := make([]HalfEdgeID, 0, f.Degree)
	e := f.Edge
	for i := 0; i < f.Degree; i++ {
		loop = append(loop, e)
		e = m.HalfEdges[e-1].Next
	}
	return loop
}

// FaceVertices returns the target vertices of a face's loop in order.
func (m *Mesh) FaceVertices(id FaceID) []VertexID {
	loop := m.FaceLoop(id)
	verts := make([]VertexID, len(loop))
	for i, e := range loop {
		verts[i] = m.HalfEdges[e-1].Vertex
	}
	return verts
}

// FacesAround returns the faces incident to a vertex. A face that uses the
// vertex more than once is listed once per use.
func (m *Mesh) FacesAround(id VertexID) []FaceID {
	if m.Vertex(id) == nil {
		return nil
	}
	return m.vertexFaces[id-1]
}

// EdgeFan returns every half-edge running between a and b in either
// direction, in creation order.
func (m *Mesh) EdgeFan(a, b VertexID) []HalfEdgeID {
	return m.fans[EdgeKey{a, b}.Undirected()]
}

// BoundaryEdges returns the half-edges that have no pair.
func (m *Mesh) BoundaryEdges() []HalfEdgeID {
	var out []HalfEdgeID
	for i := range m.HalfEdges {
		if m.HalfEdges[i].Pair == NoHalfEdge {
			out = append(out, m.HalfEdges[i].ID)
		}
	}
	return out
}

// NonManifoldEdges returns the undirected edges used by more than two
// half-edges, sorted by vertex ids.
func (m *Mesh) NonManifoldEdges() []EdgeKey {
	var out []EdgeKey
	for k, fan := range m.fans {
		if len(fan) > 2 {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Stats summarizes a mesh.
type Stats struct {
	Vertices         int
	Faces            int
	HalfEdges        int
	PairedHalfEdges  int
	BoundaryEdges    int
	UndirectedEdges  int
	NonManifoldEdges int
	IsolatedVertices int
	NormalSource     NormalSource
}

// IsClosed reports whether every half-edge found a pair.
func (s Stats) IsClosed() bool {
	return s.HalfEdges > 0 && s.BoundaryEdges == 0
}

// Stats computes summary counts for the mesh.
func (m *Mesh) Stats() Stats {
	s := Stats{
		Vertices:        len(m.Vertices),
		Faces:           len(m.Faces),
		HalfEdges:       len(m.HalfEdges),
		UndirectedEdges: len(m.fans),
		NormalSource:    m.NormalSource,
	}
	for i := range m.HalfEdges {
		if m.HalfEdges[i].Pair == NoHalfEdge {
			s.BoundaryEdges++
		} else {
			s.PairedHalfEdges++
		}
	}
	for _, fan := range m.fans {
		if len(fan) > 2 {
			s.NonManifoldEdges++
		}
	}
	for _, faces := range m.vertexFaces {
		if len(faces) == 0 {
			s.IsolatedVertices++
		}
	}
	return s
}
