package algophase

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-phase/engine"
)

// Phase caches the phase gradient of one rank's sub-lattice and synthesizes
// momentum phase fields from it on demand.
//
// After NewPhase returns, a Phase holds only immutable state; At, Cache and
// Project are safe for concurrent use and always return fresh storage.
type Phase struct {
	grad    *PhaseGradient
	ctx     engine.Context
	info    engine.BackendInfo
	logger  *Logger
	metrics MetricsCollector
	workers int
	closed  atomic.Bool
}

// NewPhase builds the phase gradient for geom on the configured engine.
func NewPhase(geom Geometry, opts ...Option) (*Phase, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := geom.Validate(); err != nil {
		return nil, err
	}

	backend := o.backend
	if backend == nil {
		backend = engine.Default()
	}

	info := backend.Info()
	if !backend.Available() {
		return nil, fmt.Errorf("%s: %w", info.Name, engine.ErrBackendUnavailable)
	}

	ctx, err := backend.NewContext(o.deviceIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: new context: %w", info.Name, err)
	}

	start := time.Now()

	grad, err := buildGradient(ctx, geom)
	if err != nil {
		_ = ctx.Close()
		return nil, err
	}

	elapsed := time.Since(start)
	o.metrics.RecordGradientBuild(info.Name, geom.Local.Volume(), elapsed)

	logger := o.logger.WithGeometry(geom)
	logger.Debug("phase gradient built",
		"backend", info.Name,
		"shape", grad.shape.String(),
		"duration", elapsed,
	)

	return &Phase{
		grad:    grad,
		ctx:     ctx,
		info:    info,
		logger:  logger,
		metrics: o.metrics,
		workers: o.workers,
	}, nil
}

// NewPhaseFromTopology splits the global lattice over topo's process grid
// and builds the phase cache for topo's rank.
func NewPhaseFromTopology(global Dims, topo Topology, opts ...Option) (*Phase, error) {
	geom, err := GeometryFromGlobal(global, topo)
	if err != nil {
		return nil, err
	}
	return NewPhase(geom, opts...)
}

// Gradient returns the cached phase gradient.
func (p *Phase) Gradient() *PhaseGradient {
	return p.grad
}

// Geometry returns the geometry the cache was built for.
func (p *Phase) Geometry() Geometry {
	return p.grad.geom
}

// Shape returns the checkerboard shape of every field the cache produces.
func (p *Phase) Shape() CheckerboardShape {
	return p.grad.shape
}

// Backend reports the engine the cache runs on.
func (p *Phase) Backend() engine.BackendInfo {
	return p.info
}

// At returns exp(i(px·x + py·y + pz·z)) over the local sub-lattice.
func (p *Phase) At(mom Momentum) (*Field, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()

	f, err := PhaseAt(p.ctx, p.grad, mom)
	if err != nil {
		return nil, closedErr(err)
	}

	p.metrics.RecordPhases(p.info.Name, 1, time.Since(start))

	return f, nil
}

// Cache returns the phases of moms stacked in input order. Entry k equals
// At(moms[k]).
func (p *Phase) Cache(moms []Momentum) (*FieldStack, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()

	s, err := PhaseCache(p.ctx, p.grad, moms)
	if err != nil {
		return nil, closedErr(err)
	}

	elapsed := time.Since(start)
	p.metrics.RecordPhases(p.info.Name, len(moms), elapsed)
	p.logger.Debug("phase cache built", "momenta", len(moms), "duration", elapsed)

	return s, nil
}

// Close releases the engine context. Further calls return ErrClosed.
func (p *Phase) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.ctx.Close()
}

// closedErr reports a context closed by a concurrent Close as ErrClosed.
func closedErr(err error) error {
	if errors.Is(err, engine.ErrContextClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}

// PhaseAt evaluates the phase of mom from grad on ctx.
func PhaseAt(ctx engine.Context, grad *PhaseGradient, mom Momentum) (*Field, error) {
	if grad == nil {
		return nil, ErrNilField
	}

	n := grad.shape.Len()
	angle := make([]float64, n)

	coeffs := []float64{float64(mom[0]), float64(mom[1]), float64(mom[2])}
	if err := ctx.Combine(angle, coeffs, grad.angles[X], grad.angles[Y], grad.angles[Z]); err != nil {
		return nil, fmt.Errorf("momentum %s: %w", mom, err)
	}

	data := make([]complex128, n)
	if err := ctx.Exp(data, angle); err != nil {
		return nil, fmt.Errorf("momentum %s: %w", mom, err)
	}

	return &Field{Momentum: mom, Shape: grad.shape, Data: data}, nil
}

// PhaseCache evaluates the phase of every momentum in moms and stacks the
// results along a leading axis, preserving order.
func PhaseCache(ctx engine.Context, grad *PhaseGradient, moms []Momentum) (*FieldStack, error) {
	if grad == nil {
		return nil, ErrNilField
	}

	fields := make([][]complex128, len(moms))
	for k, mom := range moms {
		f, err := PhaseAt(ctx, grad, mom)
		if err != nil {
			return nil, err
		}
		fields[k] = f.Data
	}

	data := make([]complex128, len(moms)*grad.shape.Len())
	if err := ctx.Stack(data, fields...); err != nil {
		return nil, fmt.Errorf("stack %d phases: %w", len(moms), err)
	}

	return &FieldStack{
		Momenta: append([]Momentum(nil), moms...),
		Shape:   grad.shape,
		Data:    data,
	}, nil
}
