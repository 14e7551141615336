package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/pkg/math"
)

// Topology errors.
var (
	ErrDegenerateFace = errors.New("face has fewer than 3 vertices")
	ErrUnknownVertex  = errors.New("face references unknown vertex")
)

// topologyBuilder links faces into half-edge loops and pairs opposite
// half-edges as they are created.
type topologyBuilder struct {
	m     *Mesh
	edges map[EdgeKey]HalfEdgeID // Latest half-edge per directed (tail, head)
	log   *zap.Logger
}

// newTopologyBuilder sizes the face and half-edge arenas up front from the
// expected face and corner counts.
func newTopologyBuilder(positions []math.Vec3, faces, corners int, log *zap.Logger) *topologyBuilder {
	m := &Mesh{
		Vertices:    make([]Vertex, len(positions)),
		Faces:       make([]Face, 0, faces),
		HalfEdges:   make([]HalfEdge, 0, corners),
		vertexFaces: make([][]FaceID, len(positions)),
		fans:        make(map[EdgeKey][]HalfEdgeID),
	}
	for i, p := range positions {
		m.Vertices[i] = Vertex{ID: VertexID(i + 1), Position: p}
	}
	if len(m.Vertices) > 0 {
		m.FirstVertex = m.Vertices[0].ID
	}
	return &topologyBuilder{
		m:     m,
		edges: make(map[EdgeKey]HalfEdgeID),
		log:   log,
	}
}

func (b *topologyBuilder) he(id HalfEdgeID) *HalfEdge {
	return &b.m.HalfEdges[id-1]
}

// addFace appends a face whose loop visits ids in order. Half-edge i runs
// from ids[i] to ids[(i+1) mod n].
func (b *topologyBuilder) addFace(ids []VertexID) error {
	n := len(ids)
	if n < 3 {
		return fmt.Errorf("%w: face %d has %d", ErrDegenerateFace, len(b.m.Faces)+1, n)
	}
	for _, id := range ids {
		if id < 1 || int(id) > len(b.m.Vertices) {
			return fmt.Errorf("%w: face %d vertex %d", ErrUnknownVertex, len(b.m.Faces)+1, id)
		}
	}

	fid := FaceID(len(b.m.Faces) + 1)
	first := HalfEdgeID(len(b.m.HalfEdges) + 1)
	b.m.Faces = append(b.m.Faces, Face{ID: fid, Edge: first, Degree: n})

	for i := 0; i < n; i++ {
		tail, head := ids[i], ids[(i+1)%n]
		id := first + HalfEdgeID(i)
		b.m.HalfEdges = append(b.m.HalfEdges, HalfEdge{
			ID:     id,
			Vertex: head,
			Face:   fid,
			Next:   first + HalfEdgeID((i+1)%n),
			Prev:   first + HalfEdgeID((i+n-1)%n),
		})

		b.m.vertexFaces[tail-1] = append(b.m.vertexFaces[tail-1], fid)
		if v := &b.m.Vertices[tail-1]; v.Edge == NoHalfEdge {
			v.Edge = id
		}

		undirected := EdgeKey{tail, head}.Undirected()
		b.m.fans[undirected] = append(b.m.fans[undirected], id)

		b.pair(id, tail, head)
	}
	return nil
}

// pair links id (tail -> head) with the latest half-edge running head -> tail.
// When that half-edge is already paired, the newer match wins and its old
// partner becomes unpaired, keeping pair.pair == self.
func (b *topologyBuilder) pair(id HalfEdgeID, tail, head VertexID) {
	if tail == head {
		b.log.Debug("zero-length edge left unpaired",
			zap.Int32("halfEdge", int32(id)), zap.Int32("vertex", int32(tail)))
		return
	}

	if opp, ok := b.edges[EdgeKey{head, tail}]; ok {
		o := b.he(opp)
		if o.Pair != NoHalfEdge {
			b.log.Debug("non-manifold edge, re-pairing",
				zap.Int32("tail", int32(tail)), zap.Int32("head", int32(head)),
				zap.Int32("unpaired", int32(o.Pair)))
			b.he(o.Pair).Pair = NoHalfEdge
		}
		o.Pair = id
		b.he(id).Pair = opp
	}

	key := EdgeKey{tail, head}
	if prev, dup := b.edges[key]; dup {
		b.log.Debug("directed edge used by more than one face",
			zap.Int32("tail", int32(tail)), zap.Int32("head", int32(head)),
			zap.Int32("previous", int32(prev)), zap.Int32("current", int32(id)))
	}
	b.edges[key] = id
}

// finish logs unmatched half-edges and hands over the mesh.
func (b *topologyBuilder) finish() *Mesh {
	unpaired := 0
	for i := range b.m.HalfEdges {
		if b.m.HalfEdges[i].Pair == NoHalfEdge {
			unpaired++
		}
	}
	if unpaired > 0 {
		b.log.Debug("unpaired half-edges (boundary or non-manifold)",
			zap.Int("count", unpaired), zap.Int("total", len(b.m.HalfEdges)))
	}
	return b.m
}
