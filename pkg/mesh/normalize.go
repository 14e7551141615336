package mesh

import (
	"github.com/Faultbox/objmesh/pkg/math"
)

// HandednessConversion returns the fixed transform from the right-handed
// source frame to the left-handed target frame: mirror Z, then rotate 180
// degrees about Y. The two diagonal factors compose to diag(-1, 1, 1).
func HandednessConversion() math.Mat4 {
	return math.Scale(1, 1, -1).Mul(math.RotateYDegrees(180))
}

// Normalization describes the transform applied to vertex positions.
type Normalization struct {
	Mode      NormalizeMode
	Center    math.Vec3 // (min+max)/2 of the source bounds
	Scale     float32   // 1 / half the source diagonal, 1 if degenerate
	Transform math.Mat4
}

// NewNormalization computes the center, scale and transform for the source
// bounds [lo, hi].
func NewNormalization(lo, hi math.Vec3, mode NormalizeMode) Normalization {
	n := Normalization{
		Mode:   mode,
		Center: lo.Midpoint(hi),
		Scale:  1,
	}
	if half := lo.Distance(hi) / 2; half != 0 {
		n.Scale = 1 / half
	}

	switch mode {
	case NormalizeFull:
		n.Transform = HandednessConversion().
			Mul(math.Scale(n.Scale, n.Scale, n.Scale)).
			Mul(math.TranslateVec(n.Center.Scale(-1)))
	case NormalizeRotateOnly:
		n.Transform = HandednessConversion()
	default:
		n.Transform = math.Identity()
	}
	return n
}

// Apply transforms a single point.
func (n Normalization) Apply(p math.Vec3) math.Vec3 {
	return n.Transform.TransformVec3(p)
}

// ApplyBounds transforms the box [lo, hi] and re-sorts the corners so the
// result still satisfies min <= max componentwise.
func (n Normalization) ApplyBounds(lo, hi math.Vec3) (math.Vec3, math.Vec3) {
	a := n.Apply(lo)
	b := n.Apply(hi)
	return a.Min(b), a.Max(b)
}
