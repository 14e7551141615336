package mesh

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/pkg/formats"
	"github.com/Faultbox/objmesh/pkg/math"
)

// Build turns accumulated OBJ geometry into a half-edge mesh: normalize
// positions and bounds, link face loops, pair opposite half-edges, then
// compute face and vertex normals.
func Build(obj *formats.OBJ, opts Options) (*Mesh, error) {
	log := opts.logger()

	lo, hi := obj.Min, obj.Max
	if opts.BoundsSeed == SeedFirstVertex {
		lo, hi = obj.ExtentMin, obj.ExtentMax
	}
	norm := NewNormalization(lo, hi, opts.Normalize)

	positions := make([]math.Vec3, obj.GetVertexCount())
	for i, p := range obj.Vertices {
		positions[i] = norm.Apply(p)
	}

	b := newTopologyBuilder(positions, obj.GetFaceCount(), obj.GetCornerCount(), log)
	ids := make([]VertexID, 0, 8)
	for _, f := range obj.Faces {
		ids = ids[:0]
		for _, c := range f.Corners {
			ids = append(ids, VertexID(c.Vertex))
		}
		if err := b.addFace(ids); err != nil {
			return nil, fmt.Errorf("line %d: %w", f.Line, err)
		}
	}

	m := b.finish()
	m.Normalization = norm
	m.Min, m.Max = norm.ApplyBounds(lo, hi)

	m.computeFaceGeometry(opts.FaceGeometry)

	if obj.HasCompleteNormals() {
		m.assignSuppliedNormals(obj.Normals, obj.VertexNormals, log)
	} else {
		if len(obj.VertexNormals) > 0 {
			log.Warn("supplied normals do not cover every vertex, averaging face normals",
				zap.Int("mapped", len(obj.VertexNormals)),
				zap.Int("vertices", obj.GetVertexCount()))
		}
		m.averageVertexNormals(log)
	}

	log.Debug("mesh built",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)),
		zap.Int("halfEdges", len(m.HalfEdges)),
		zap.Stringer("normalize", opts.Normalize),
		zap.Stringer("normals", m.NormalSource))

	return m, nil
}

// Parse reads OBJ text from r and builds a mesh. On any error no mesh is
// returned.
func Parse(r io.Reader, opts Options) (*Mesh, error) {
	obj, err := formats.ParseOBJReader(r)
	if err != nil {
		return nil, err
	}
	return Build(obj, opts)
}

// ParseFile reads and builds the OBJ file at path.
func ParseFile(path string, opts Options) (*Mesh, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Build(obj, opts)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}
	return m, nil
}
