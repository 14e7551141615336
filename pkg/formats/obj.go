// Package formats provides parsers for polygon mesh file formats.
//
// Wavefront OBJ is read as text, one directive per line. Sources with a
// UTF-8 or UTF-16 byte order mark are decoded before tokenizing.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/objmesh/pkg/encoding"
	"github.com/Faultbox/objmesh/pkg/math"
)

// OBJ format errors.
var (
	ErrMalformedNumber = errors.New("malformed numeric field")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidFaceRef  = errors.New("invalid face vertex reference")
)

// OBJDirective identifies the kind of an OBJ line.
type OBJDirective int

const (
	OBJLineIgnored OBJDirective = iota // Unknown or unsupported keyword
	OBJLineVertex                      // v x y z
	OBJLineNormal                      // vn x y z
	OBJLineFace                        // f r1 r2 r3 ...
)

// String returns the OBJ keyword for the directive.
func (d OBJDirective) String() string {
	switch d {
	case OBJLineVertex:
		return "v"
	case OBJLineNormal:
		return "vn"
	case OBJLineFace:
		return "f"
	default:
		return "ignored"
	}
}

// OBJLine is a tokenized OBJ line.
type OBJLine struct {
	Directive OBJDirective
	Keyword   string   // Lower-cased first token
	Fields    []string // Remaining tokens
}

// OBJCorner is one vertex occurrence in a face.
type OBJCorner struct {
	Vertex    int  // 1-based vertex id
	Normal    int  // 1-based normal id, valid when HasNormal
	HasNormal bool // Third sub-field was present and numeric
}

// OBJFace is a polygon as listed in the file.
type OBJFace struct {
	ID      int // 1-based, file order
	Line    int // Source line number
	Corners []OBJCorner
}

// VertexIDs returns the face's vertex ids in loop order.
func (f OBJFace) VertexIDs() []int {
	ids := make([]int, len(f.Corners))
	for i, c := range f.Corners {
		ids[i] = c.Vertex
	}
	return ids
}

// OBJ holds the raw geometry accumulated from an OBJ file.
type OBJ struct {
	Vertices []math.Vec3 // Positions, index = vertex id - 1
	Normals  []math.Vec3 // Normal directions in file order
	Faces    []OBJFace   // Faces in file order

	// VertexNormals maps a vertex id to the normal id given for it by a face
	// corner. When a vertex appears several times the last occurrence wins.
	VertexNormals map[int]int

	// Min and Max are the running bounds seeded at the origin, so the box
	// always contains (0,0,0).
	Min, Max math.Vec3

	// ExtentMin and ExtentMax are the tight bounds of the vertices alone.
	// Both are zero when the file has no vertices.
	ExtentMin, ExtentMax math.Vec3

	// Ignored counts lines whose keyword is not understood, by keyword.
	Ignored map[string]int
}

// TokenizeOBJLine classifies a single line. It returns false for blank and
// comment lines.
func TokenizeOBJLine(line string) (OBJLine, bool) {
	data := strings.TrimSpace(line)
	if data == "" || strings.HasPrefix(data, "#") {
		return OBJLine{}, false
	}

	parts := strings.Fields(data)
	keyword := strings.ToLower(parts[0])
	out := OBJLine{Keyword: keyword, Fields: parts[1:]}
	switch keyword {
	case "v":
		out.Directive = OBJLineVertex
	case "vn":
		out.Directive = OBJLineNormal
	case "f":
		out.Directive = OBJLineFace
	default:
		out.Directive = OBJLineIgnored
	}
	return out, true
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ParseOBJReader(bytes.NewReader(data))
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJReader(f)
}

// ParseOBJReader reads every line from r and accumulates vertices, normals and
// faces. Any error aborts the parse and no partial result is returned.
func ParseOBJReader(r io.Reader) (*OBJ, error) {
	obj := &OBJ{
		VertexNormals: make(map[int]int),
		Ignored:       make(map[string]int),
	}

	scanner := bufio.NewScanner(encoding.NewReader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line, ok := TokenizeOBJLine(scanner.Text())
		if !ok {
			continue
		}

		var err error
		switch line.Directive {
		case OBJLineVertex:
			err = obj.addVertex(line.Fields)
		case OBJLineNormal:
			err = obj.addNormal(line.Fields)
		case OBJLineFace:
			err = obj.addFace(line.Fields, lineNo)
		default:
			obj.Ignored[line.Keyword]++
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	// Faces may reference vertices defined later in the file, so ranges are
	// checked once everything has been read.
	for _, face := range obj.Faces {
		for _, c := range face.Corners {
			if c.Vertex < 1 || c.Vertex > len(obj.Vertices) {
				return nil, fmt.Errorf("line %d: %w: vertex %d of %d",
					face.Line, ErrInvalidFaceRef, c.Vertex, len(obj.Vertices))
			}
		}
	}

	return obj, nil
}

func (obj *OBJ) addVertex(fields []string) error {
	p, err := parseVec3("v", fields)
	if err != nil {
		return err
	}
	obj.Vertices = append(obj.Vertices, p)

	// Running bounds
	obj.Min = obj.Min.Min(p)
	obj.Max = obj.Max.Max(p)
	if len(obj.Vertices) == 1 {
		obj.ExtentMin, obj.ExtentMax = p, p
	} else {
		obj.ExtentMin = obj.ExtentMin.Min(p)
		obj.ExtentMax = obj.ExtentMax.Max(p)
	}
	return nil
}

func (obj *OBJ) addNormal(fields []string) error {
	n, err := parseVec3("vn", fields)
	if err != nil {
		return err
	}
	obj.Normals = append(obj.Normals, n)
	return nil
}

func (obj *OBJ) addFace(fields []string, lineNo int) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: f needs at least 3 vertices, got %d", ErrMissingFields, len(fields))
	}

	face := OBJFace{
		ID:      len(obj.Faces) + 1,
		Line:    lineNo,
		Corners: make([]OBJCorner, 0, len(fields)),
	}
	for _, ref := range fields {
		corner, err := parseCorner(ref, len(obj.Vertices), len(obj.Normals))
		if err != nil {
			return err
		}
		if corner.HasNormal {
			obj.VertexNormals[corner.Vertex] = corner.Normal
		}
		face.Corners = append(face.Corners, corner)
	}
	obj.Faces = append(obj.Faces, face)
	return nil
}

// parseCorner parses a face reference of the form id, id/tex, id//nid or
// id/tex/nid. The texture sub-field is ignored.
func parseCorner(ref string, vertexCount, normalCount int) (OBJCorner, error) {
	sub := strings.Split(ref, "/")

	v, err := strconv.Atoi(sub[0])
	if err != nil || v == 0 {
		return OBJCorner{}, fmt.Errorf("%w: %q", ErrInvalidFaceRef, ref)
	}
	corner := OBJCorner{Vertex: resolveIndex(v, vertexCount)}

	if len(sub) > 2 && sub[2] != "" {
		if n, err := strconv.Atoi(sub[2]); err == nil {
			corner.Normal = resolveIndex(n, normalCount)
			corner.HasNormal = true
		}
	}
	return corner, nil
}

// resolveIndex turns a negative (relative) OBJ index into an absolute one
// using the number of elements defined so far.
func resolveIndex(i, count int) int {
	if i < 0 {
		return count + i + 1
	}
	return i
}

func parseVec3(keyword string, fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrMissingFields, keyword, len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %s field %d %q", ErrMalformedNumber, keyword, i+1, fields[i])
		}
		out[i] = float32(f)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// GetVertexCount returns the number of vertices.
func (obj *OBJ) GetVertexCount() int {
	return len(obj.Vertices)
}

// GetFaceCount returns the number of faces.
func (obj *OBJ) GetFaceCount() int {
	return len(obj.Faces)
}

// GetCornerCount returns the total number of face corners, which is also the
// number of half-edges the faces produce.
func (obj *OBJ) GetCornerCount() int {
	total := 0
	for _, f := range obj.Faces {
		total += len(f.Corners)
	}
	return total
}

// HasCompleteNormals reports whether a supplied normal was given for every
// vertex.
func (obj *OBJ) HasCompleteNormals() bool {
	return len(obj.VertexNormals) > 0 && len(obj.VertexNormals) == len(obj.Vertices)
}
