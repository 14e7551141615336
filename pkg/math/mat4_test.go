package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTranslate(t *testing.T) {
	got := Translate(10, 20, 30).TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("Translate: got %v, want %v", got, want)
	}
}

func TestScale(t *testing.T) {
	got := Scale(2, 3, -1).TransformVec3(Vec3{1, 2, 3})
	want := Vec3{2, 6, -3}
	if got != want {
		t.Errorf("Scale: got %v, want %v", got, want)
	}
}

func TestMulOrder(t *testing.T) {
	// Scale applied after translation.
	m := Scale(2, 2, 2).Mul(Translate(1, 0, 0))
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{4, 2, 2}
	if got != want {
		t.Errorf("Scale*Translate: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateYDegreesExact(t *testing.T) {
	tests := []struct {
		deg  float32
		in   Vec3
		want Vec3
	}{
		{0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{90, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{180, Vec3{1, 2, 3}, Vec3{-1, 2, -3}},
		{-90, Vec3{1, 0, 0}, Vec3{0, 0, 1}},
		{270, Vec3{0, 0, 1}, Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		got := RotateYDegrees(tt.deg).TransformVec3(tt.in)
		if got != tt.want {
			t.Errorf("RotateYDegrees(%v) * %v = %v, want %v", tt.deg, tt.in, got, tt.want)
		}
	}
}

func TestRotateYDegreesArbitrary(t *testing.T) {
	got := RotateYDegrees(45).TransformVec3(Vec3{1, 0, 0})
	want := RotateY(math.Pi / 4).TransformVec3(Vec3{1, 0, 0})
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("RotateYDegrees(45): got %v, want %v", got, want)
	}
}

func TestTransformVec3AppliesTranslation(t *testing.T) {
	m := Translate(5, 5, 5).Mul(Scale(-1, 1, 1))
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{4, 7, 8}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestDeterminant3(t *testing.T) {
	if d := Identity().Determinant3(); d != 1 {
		t.Errorf("Identity det = %v, want 1", d)
	}
	if d := Scale(1, 1, -1).Determinant3(); d != -1 {
		t.Errorf("mirror det = %v, want -1", d)
	}
	if d := RotateYDegrees(180).Determinant3(); d != 1 {
		t.Errorf("rotation det = %v, want 1", d)
	}
}
