package mesh

import (
	"errors"
	"fmt"
)

// ErrInvariant is returned by Validate when the topology is inconsistent.
var ErrInvariant = errors.New("mesh invariant violated")

// Validate checks the structural invariants of the mesh:
//   - ids are dense and 1-based
//   - e.next.prev == e and e.prev.next == e
//   - every face loop closes after exactly Degree steps and stays on the face
//   - e.pair.pair == e and pairs join the same vertices in reverse order
func (m *Mesh) Validate() error {
	for i := range m.Vertices {
		if m.Vertices[i].ID != VertexID(i+1) {
			return fmt.Errorf("%w: vertex at %d has id %d", ErrInvariant, i, m.Vertices[i].ID)
		}
	}

	for i := range m.HalfEdges {
		e := &m.HalfEdges[i]
		if e.ID != HalfEdgeID(i+1) {
			return fmt.Errorf("%w: half-edge at %d has id %d", ErrInvariant, i, e.ID)
		}
		next, prev := m.HalfEdge(e.Next), m.HalfEdge(e.Prev)
		if next == nil || prev == nil {
			return fmt.Errorf("%w: half-edge %d has dangling next/prev", ErrInvariant, e.ID)
		}
		if next.Prev != e.ID || prev.Next != e.ID {
			return fmt.Errorf("%w: half-edge %d next/prev mismatch", ErrInvariant, e.ID)
		}
		if m.Vertex(e.Vertex) == nil || m.Face(e.Face) == nil {
			return fmt.Errorf("%w: half-edge %d has dangling vertex/face", ErrInvariant, e.ID)
		}
		if e.Pair == NoHalfEdge {
			continue
		}
		pair := m.HalfEdge(e.Pair)
		if pair == nil || pair.Pair != e.ID {
			return fmt.Errorf("%w: half-edge %d pair %d is not mutual", ErrInvariant, e.ID, e.Pair)
		}
		mine, theirs := m.Endpoints(e.ID), m.Endpoints(pair.ID)
		if mine.A != theirs.B || mine.B != theirs.A {
			return fmt.Errorf("%w: half-edge %d (%d->%d) paired with %d (%d->%d)",
				ErrInvariant, e.ID, mine.A, mine.B, pair.ID, theirs.A, theirs.B)
		}
	}

	for i := range m.Faces {
		f := &m.Faces[i]
		if f.ID != FaceID(i+1) {
			return fmt.Errorf("%w: face at %d has id %d", ErrInvariant, i, f.ID)
		}
		if f.Degree < 3 || m.HalfEdge(f.Edge) == nil {
			return fmt.Errorf("%w: face %d has degree %d", ErrInvariant, f.ID, f.Degree)
		}
		e := f.Edge
		for step := 0; step < f.Degree; step++ {
			he := m.HalfEdges[e-1]
			if he.Face != f.ID {
				return fmt.Errorf("%w: face %d loop reaches half-edge %d of face %d",
					ErrInvariant, f.ID, he.ID, he.Face)
			}
			e = he.Next
			if e == f.Edge && step != f.Degree-1 {
				return fmt.Errorf("%w: face %d loop closes after %d of %d steps",
					ErrInvariant, f.ID, step+1, f.Degree)
			}
		}
		if e != f.Edge {
			return fmt.Errorf("%w: face %d loop does not close after %d steps", ErrInvariant, f.ID, f.Degree)
		}
	}
	return nil
}
