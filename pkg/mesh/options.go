package mesh

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NormalizeMode selects how vertex positions are transformed after parsing.
type NormalizeMode int

const (
	// NormalizeFull recenters on the bounding box, scales the half-diagonal
	// to 1, then converts handedness.
	NormalizeFull NormalizeMode = iota
	// NormalizeRotateOnly applies only the handedness conversion.
	NormalizeRotateOnly
	// NormalizeNone leaves positions exactly as read.
	NormalizeNone
)

// String returns the config name of the mode.
func (m NormalizeMode) String() string {
	switch m {
	case NormalizeFull:
		return "full"
	case NormalizeRotateOnly:
		return "rotate-only"
	case NormalizeNone:
		return "none"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseNormalizeMode parses a config name.
func ParseNormalizeMode(s string) (NormalizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return NormalizeFull, nil
	case "rotate-only", "rotate":
		return NormalizeRotateOnly, nil
	case "none":
		return NormalizeNone, nil
	}
	return 0, fmt.Errorf("unknown normalize mode %q", s)
}

// BoundsSeed selects the starting value of the bounding box.
type BoundsSeed int

const (
	// SeedOrigin starts the box at (0,0,0), so it always contains the origin.
	SeedOrigin BoundsSeed = iota
	// SeedFirstVertex uses the tight box of the vertices.
	SeedFirstVertex
)

// String returns the config name of the seed.
func (s BoundsSeed) String() string {
	switch s {
	case SeedOrigin:
		return "origin"
	case SeedFirstVertex:
		return "first-vertex"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseBoundsSeed parses a config name.
func ParseBoundsSeed(s string) (BoundsSeed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "origin":
		return SeedOrigin, nil
	case "first-vertex", "tight":
		return SeedFirstVertex, nil
	}
	return 0, fmt.Errorf("unknown bounds seed %q", s)
}

// FaceGeometry selects which corners feed face normals and centroids.
type FaceGeometry int

const (
	// FaceFirstThree uses the targets of the first three half-edges.
	FaceFirstThree FaceGeometry = iota
	// FacePolygon uses every corner (Newell normal, vertex mean centroid).
	FacePolygon
)

// String returns the config name of the mode.
func (g FaceGeometry) String() string {
	switch g {
	case FaceFirstThree:
		return "first-three"
	case FacePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Unknown(%d)", int(g))
	}
}

// ParseFaceGeometry parses a config name.
func ParseFaceGeometry(s string) (FaceGeometry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first-three":
		return FaceFirstThree, nil
	case "polygon":
		return FacePolygon, nil
	}
	return 0, fmt.Errorf("unknown face geometry %q", s)
}

// Options controls mesh construction.
type Options struct {
	Normalize    NormalizeMode
	BoundsSeed   BoundsSeed
	FaceGeometry FaceGeometry
	Logger       *zap.Logger // Defaults to a no-op logger
}

// DefaultOptions returns the recommended settings.
func DefaultOptions() Options {
	return Options{
		Normalize:    NormalizeFull,
		BoundsSeed:   SeedOrigin,
		FaceGeometry: FaceFirstThree,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
