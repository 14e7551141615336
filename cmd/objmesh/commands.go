package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/loader"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/pkg/math"
	"github.com/Faultbox/objmesh/pkg/mesh"
)

var errUsage = errors.New("missing <file.obj>")

// newLoader builds a loader from the parse section of the config.
func newLoader(cfg *config.Config) (*loader.Loader, error) {
	opts, err := cfg.Parse.MeshOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger.Named("mesh")
	return loader.New(opts, logger.Named("loader")), nil
}

// loadMesh parses path in the background and waits for the result.
func loadMesh(cfg *config.Config, path string) (*mesh.Mesh, error) {
	l, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}
	ch, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	res := <-ch
	return res.Mesh, res.Err
}

func fileArg(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() < 1 {
		return "", fmt.Errorf("%s: %w", fs.Name(), errUsage)
	}
	return fs.Arg(0), nil
}

func vec(v math.Vec3) string {
	return fmt.Sprintf("(%9.5f %9.5f %9.5f)", v.X, v.Y, v.Z)
}

func cmdInfo(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	path, err := fileArg(fs, args)
	if err != nil {
		return err
	}

	m, err := loadMesh(cfg, path)
	if err != nil {
		return err
	}
	s := m.Stats()

	fmt.Fprintf(w, "File:          %s\n", path)
	fmt.Fprintf(w, "Vertices:      %d (%d isolated)\n", s.Vertices, s.IsolatedVertices)
	fmt.Fprintf(w, "Faces:         %d\n", s.Faces)
	fmt.Fprintf(w, "Half-edges:    %d (%d paired, %d boundary)\n", s.HalfEdges, s.PairedHalfEdges, s.BoundaryEdges)
	fmt.Fprintf(w, "Edges:         %d (%d non-manifold)\n", s.UndirectedEdges, s.NonManifoldEdges)
	fmt.Fprintf(w, "Closed:        %v\n", s.IsClosed())
	fmt.Fprintf(w, "Normals:       %s\n", s.NormalSource)
	fmt.Fprintf(w, "Normalization: %s (scale %.6g)\n", m.Normalization.Mode, m.Normalization.Scale)
	fmt.Fprintf(w, "Bounds:        %s .. %s\n", vec(m.Min), vec(m.Max))

	if nm := m.NonManifoldEdges(); len(nm) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Non-manifold edges:")
		for i, k := range nm {
			if i == 10 {
				fmt.Fprintf(w, "  ... and %d more\n", len(nm)-i)
				break
			}
			fmt.Fprintf(w, "  %d-%d  %d half-edges\n", k.A, k.B, len(m.EdgeFan(k.A, k.B)))
		}
	}
	return nil
}

func cmdEdges(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("edges", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Limit output to N half-edges (0 = all)")
	path, err := fileArg(fs, args)
	if err != nil {
		return err
	}

	m, err := loadMesh(cfg, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%6s %6s %6s %6s %6s %6s %6s\n", "id", "from", "to", "face", "next", "prev", "pair")
	for i, he := range m.HalfEdges {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(w, "... (%d more)\n", len(m.HalfEdges)-i)
			break
		}
		pair := "-"
		if he.Pair != mesh.NoHalfEdge {
			pair = fmt.Sprint(he.Pair)
		}
		fmt.Fprintf(w, "%6d %6d %6d %6d %6d %6d %6s\n",
			he.ID, m.Origin(he.ID), he.Vertex, he.Face, he.Next, he.Prev, pair)
	}
	return nil
}

func cmdNormals(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("normals", flag.ContinueOnError)
	unit := fs.Bool("unit", false, "Print unit-length normals")
	path, err := fileArg(fs, args)
	if err != nil {
		return err
	}

	m, err := loadMesh(cfg, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# normals: %s\n", m.NormalSource)
	for _, v := range m.Vertices {
		n := "-"
		if v.HasNormal {
			if *unit {
				n = vec(v.Normal.Normalize())
			} else {
				n = vec(v.Normal)
			}
		}
		fmt.Fprintf(w, "%6d %s %s\n", v.ID, vec(v.Position), n)
	}
	return nil
}

func cmdValidate(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	path, err := fileArg(fs, args)
	if err != nil {
		return err
	}

	m, err := loadMesh(cfg, path)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		logger.Warn("mesh failed validation", zap.String("path", path), zap.Error(err))
		return err
	}
	s := m.Stats()
	fmt.Fprintf(w, "OK: %d faces, %d half-edges, closed=%v\n", s.Faces, s.HalfEdges, s.IsClosed())
	return nil
}

func cmdWatch(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	path, err := fileArg(fs, args)
	if err != nil {
		return err
	}

	l, err := newLoader(cfg)
	if err != nil {
		return err
	}
	watcher, err := loader.NewWatcher(l, path, cfg.Watch.Debounce())
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Error("closing watcher", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher.Reload()
	logger.Info("watching", zap.String("path", path), zap.Duration("debounce", cfg.Watch.Debounce()))
	fmt.Fprintf(w, "Watching %s (Ctrl+C to stop)\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case res, ok := <-watcher.Results():
			if !ok {
				return nil
			}
			if res.Err != nil {
				fmt.Fprintf(w, "[%s] error: %v\n", res.ID.String()[:8], res.Err)
				continue
			}
			s := res.Mesh.Stats()
			fmt.Fprintf(w, "[%s] %d vertices, %d faces, %d boundary, %d non-manifold, closed=%v (%s)\n",
				res.ID.String()[:8], s.Vertices, s.Faces, s.BoundaryEdges, s.NonManifoldEdges,
				s.IsClosed(), res.Elapsed)
		}
	}
}
