package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/objmesh/pkg/math"
)

func TestTokenizeOBJLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		directive OBJDirective
		fields    int
	}{
		{"blank", "", false, OBJLineIgnored, 0},
		{"whitespace", "   \t ", false, OBJLineIgnored, 0},
		{"comment", "# a comment", false, OBJLineIgnored, 0},
		{"indented comment", "   # v 1 2 3", false, OBJLineIgnored, 0},
		{"vertex", "v 1 2 3", true, OBJLineVertex, 3},
		{"vertex tabs", "v\t1   2\t\t3  ", true, OBJLineVertex, 3},
		{"upper case", "V 1 2 3", true, OBJLineVertex, 3},
		{"normal", "vn 0 0 1", true, OBJLineNormal, 3},
		{"face", "f 1/1/1 2/2/2 3/3/3", true, OBJLineFace, 3},
		{"texcoord ignored", "vt 0.5 0.5", true, OBJLineIgnored, 2},
		{"group ignored", "g cube", true, OBJLineIgnored, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TokenizeOBJLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Directive != tt.directive {
				t.Errorf("directive = %v, want %v", got.Directive, tt.directive)
			}
			if len(got.Fields) != tt.fields {
				t.Errorf("fields = %v, want %d fields", got.Fields, tt.fields)
			}
		})
	}
}

func TestOBJDirective_String(t *testing.T) {
	tests := []struct {
		d    OBJDirective
		want string
	}{
		{OBJLineVertex, "v"},
		{OBJLineNormal, "vn"},
		{OBJLineFace, "f"},
		{OBJLineIgnored, "ignored"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestFaceLineProducesFaceRecord(t *testing.T) {
	line, ok := TokenizeOBJLine("f 3 1 2")
	if !ok || line.Directive != OBJLineFace {
		t.Fatalf("directive = %v (ok %v), want %v", line.Directive, ok, OBJLineFace)
	}

	obj, err := ParseOBJ([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 3 1 2\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	want := OBJFace{
		ID:   1,
		Line: 4,
		Corners: []OBJCorner{
			{Vertex: 3}, {Vertex: 1}, {Vertex: 2},
		},
	}
	got := obj.Faces[0]
	if got.ID != want.ID || got.Line != want.Line || len(got.Corners) != len(want.Corners) {
		t.Fatalf("face = %+v, want %+v", got, want)
	}
	for i := range want.Corners {
		if got.Corners[i] != want.Corners[i] {
			t.Errorf("corner %d = %+v, want %+v", i, got.Corners[i], want.Corners[i])
		}
	}
}

func TestParseOBJ_Quad(t *testing.T) {
	data := `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.GetVertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", obj.GetVertexCount())
	}
	if obj.GetFaceCount() != 1 {
		t.Fatalf("expected 1 face, got %d", obj.GetFaceCount())
	}
	face := obj.Faces[0]
	if face.ID != 1 || face.Line != 6 {
		t.Errorf("face id/line = %d/%d, want 1/6", face.ID, face.Line)
	}
	ids := face.VertexIDs()
	want := []int{1, 2, 3, 4}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("corner %d = %d, want %d", i, ids[i], want[i])
		}
	}
	if obj.GetCornerCount() != 4 {
		t.Errorf("expected 4 corners, got %d", obj.GetCornerCount())
	}
	if obj.HasCompleteNormals() {
		t.Error("expected no supplied normals")
	}
}

func TestParseOBJ_ByteOrderMark(t *testing.T) {
	const text = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

	utf16 := []byte{0xFF, 0xFE}
	for i := 0; i < len(text); i++ {
		utf16 = append(utf16, text[i], 0)
	}

	inputs := map[string][]byte{
		"utf8":    append([]byte{0xEF, 0xBB, 0xBF}, text...),
		"utf16le": utf16,
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			obj, err := ParseOBJ(data)
			if err != nil {
				t.Fatalf("ParseOBJ failed: %v", err)
			}
			if obj.GetVertexCount() != 3 || obj.GetFaceCount() != 1 {
				t.Errorf("got %d vertices, %d faces", obj.GetVertexCount(), obj.GetFaceCount())
			}
			if len(obj.Ignored) != 0 {
				t.Errorf("BOM leaked into directives: %v", obj.Ignored)
			}
		})
	}
}

func TestParseOBJ_FaceReferenceForms(t *testing.T) {
	data := `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 0 1
vn 0 1 0
f 1 2/7 3//2
f 1/5/1 2/6/2 4/1/
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	tests := []struct {
		face, corner int
		vertex       int
		normal       int
		hasNormal    bool
	}{
		{0, 0, 1, 0, false},
		{0, 1, 2, 0, false},
		{0, 2, 3, 2, true},
		{1, 0, 1, 1, true},
		{1, 1, 2, 2, true},
		{1, 2, 4, 0, false},
	}
	for _, tt := range tests {
		c := obj.Faces[tt.face].Corners[tt.corner]
		if c.Vertex != tt.vertex || c.Normal != tt.normal || c.HasNormal != tt.hasNormal {
			t.Errorf("face %d corner %d = %+v, want vertex %d normal %d has %v",
				tt.face, tt.corner, c, tt.vertex, tt.normal, tt.hasNormal)
		}
	}

	// Vertex 1 appears twice; the last normal wins.
	if obj.VertexNormals[1] != 1 {
		t.Errorf("vertex 1 normal = %d, want 1", obj.VertexNormals[1])
	}
	if obj.VertexNormals[3] != 2 {
		t.Errorf("vertex 3 normal = %d, want 2", obj.VertexNormals[3])
	}
	if _, ok := obj.VertexNormals[4]; ok {
		t.Error("vertex 4 should have no supplied normal")
	}
}

func TestParseOBJ_RelativeIndices(t *testing.T) {
	data := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f -3//-1 -2//-1 -1//-1
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	ids := obj.Faces[0].VertexIDs()
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("relative ids resolved to %v, want [1 2 3]", ids)
	}
	if !obj.HasCompleteNormals() {
		t.Error("expected complete normals")
	}
}

func TestParseOBJ_ForwardReference(t *testing.T) {
	data := `f 1 2 3
v 0 0 0
v 1 0 0
v 0 1 0
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.GetFaceCount() != 1 {
		t.Errorf("expected 1 face, got %d", obj.GetFaceCount())
	}
}

func TestParseOBJ_Bounds(t *testing.T) {
	data := `v 2 3 4
v 5 6 7
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	// Running bounds are seeded at the origin.
	if obj.Min != (math.Vec3{}) {
		t.Errorf("Min = %v, want origin", obj.Min)
	}
	if obj.Max != (math.Vec3{X: 5, Y: 6, Z: 7}) {
		t.Errorf("Max = %v, want (5,6,7)", obj.Max)
	}
	if obj.ExtentMin != (math.Vec3{X: 2, Y: 3, Z: 4}) {
		t.Errorf("ExtentMin = %v, want (2,3,4)", obj.ExtentMin)
	}
	if obj.ExtentMax != obj.Max {
		t.Errorf("ExtentMax = %v, want %v", obj.ExtentMax, obj.Max)
	}
}

func TestParseOBJ_IgnoredDirectives(t *testing.T) {
	data := `mtllib cube.mtl
o cube
vt 0 0
vt 1 0
usemtl red
s off
v 0 0 0
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.Ignored["vt"] != 2 {
		t.Errorf("ignored vt = %d, want 2", obj.Ignored["vt"])
	}
	if obj.Ignored["usemtl"] != 1 || obj.Ignored["mtllib"] != 1 {
		t.Errorf("ignored = %v", obj.Ignored)
	}
	if obj.GetVertexCount() != 1 {
		t.Errorf("expected 1 vertex, got %d", obj.GetVertexCount())
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		line    string
	}{
		{"malformed vertex", "v 1 abc 3\n", ErrMalformedNumber, "line 1"},
		{"malformed normal", "v 0 0 0\nvn 0 x 1\n", ErrMalformedNumber, "line 2"},
		{"short vertex", "v 1 2\n", ErrMissingFields, "line 1"},
		{"short normal", "vn 1\n", ErrMissingFields, "line 1"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMissingFields, "line 3"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrInvalidFaceRef, "line 4"},
		{"garbage index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a 1 2\n", ErrInvalidFaceRef, "line 4"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", ErrInvalidFaceRef, "line 4"},
		{"relative before start", "v 0 0 0\nf -1 -2 -3\n", ErrInvalidFaceRef, "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseOBJ([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if obj != nil {
				t.Error("expected no partial result on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not mention %q", err, tt.line)
			}
		})
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	obj, err := ParseOBJFile(path)
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if obj.GetFaceCount() != 1 {
		t.Errorf("expected 1 face, got %d", obj.GetFaceCount())
	}

	if _, err := ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}
