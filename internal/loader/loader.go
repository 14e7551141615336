// Package loader parses OBJ files off the caller's goroutine and hands the
// finished mesh back over a channel.
package loader

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/pkg/mesh"
)

// ErrBusy is returned by Load while a previous parse is still running.
var ErrBusy = errors.New("loader: parse already in progress")

// Result is the outcome of one background parse. Exactly one of Mesh and
// Err is set.
type Result struct {
	ID      uuid.UUID
	Path    string
	Mesh    *mesh.Mesh
	Err     error
	Elapsed time.Duration
}

// Loader runs at most one parse at a time.
type Loader struct {
	opts mesh.Options
	log  *zap.Logger
	busy atomic.Bool

	// parse is swapped out in tests.
	parse func(path string, opts mesh.Options) (*mesh.Mesh, error)
}

// New creates a loader that builds meshes with opts. A nil logger disables
// logging.
func New(opts mesh.Options, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Logger == nil {
		opts.Logger = log.Named("mesh")
	}
	return &Loader{
		opts:  opts,
		log:   log,
		parse: mesh.ParseFile,
	}
}

// Busy reports whether a parse is currently running.
func (l *Loader) Busy() bool {
	return l.busy.Load()
}

// Load starts parsing path in the background. The returned channel yields a
// single Result and is then closed. If a parse is already running, Load
// returns ErrBusy and starts nothing.
func (l *Loader) Load(path string) (<-chan Result, error) {
	if !l.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	id := uuid.New()
	out := make(chan Result, 1)
	log := l.log.With(zap.Stringer("request", id), zap.String("path", path))
	log.Debug("parse started")

	go func() {
		defer close(out)

		start := time.Now()
		m, err := l.parse(path, l.opts)
		res := Result{ID: id, Path: path, Mesh: m, Err: err, Elapsed: time.Since(start)}
		if err != nil {
			res.Mesh = nil
			log.Warn("parse failed", zap.Error(err), zap.Duration("elapsed", res.Elapsed))
		} else {
			log.Info("parse finished",
				zap.Int("vertices", len(m.Vertices)),
				zap.Int("faces", len(m.Faces)),
				zap.Duration("elapsed", res.Elapsed))
		}

		// Release before sending so a consumer reacting to the result can
		// start the next parse immediately.
		l.busy.Store(false)
		out <- res
	}()

	return out, nil
}
