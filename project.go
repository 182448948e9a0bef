package algophase

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Project multiplies field, one complex value per local site in checkerboard
// order, by every phase in stack and sums over the spatial volume of each
// timeslice:
//
//	out[k][t] = Σ_{x,y,z} field(x,y,z,t) · stack.Field(k)(x,y,z,t)
//
// The sums are rank-local. Reducing them over ranks is up to the caller.
func (p *Phase) Project(field []complex128, stack *FieldStack) ([][]complex128, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()

	out, err := ProjectField(field, stack, p.grad.shape, p.workers)
	if err != nil {
		return nil, err
	}

	p.metrics.RecordProjection(p.info.Name, stack.Len(), time.Since(start))

	return out, nil
}

// ProjectField is Project without a Phase. At most workers momenta are
// reduced concurrently; workers <= 0 reduces them one at a time.
func ProjectField(field []complex128, stack *FieldStack, shape CheckerboardShape, workers int) ([][]complex128, error) {
	if field == nil || stack == nil {
		return nil, ErrNilField
	}

	if len(field) != shape.Len() {
		return nil, &ShapeError{
			Operand: "field",
			Got:     fmt.Sprintf("%d sites", len(field)),
			Want:    fmt.Sprintf("%d sites of %v", shape.Len(), shape),
		}
	}

	if stack.Shape != shape || len(stack.Data) != stack.Len()*shape.Len() {
		return nil, &ShapeError{
			Operand: "stack",
			Got:     fmt.Sprintf("%d fields of %v in %d values", stack.Len(), stack.Shape, len(stack.Data)),
			Want:    shape.String(),
		}
	}

	out := make([][]complex128, stack.Len())

	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for k := range out {
		k := k
		g.Go(func() error {
			out[k] = projectOne(field, stack.Field(k).Data, shape)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func projectOne(field, phase []complex128, shape CheckerboardShape) []complex128 {
	sums := make([]complex128, shape.T)
	n := shape.SliceLen()

	for parity := 0; parity < 2; parity++ {
		for t := 0; t < shape.T; t++ {
			lo := shape.Index(parity, t, 0, 0, 0)
			f := field[lo : lo+n]
			ph := phase[lo : lo+n]

			var acc complex128
			for i := range f {
				acc += f[i] * ph[i]
			}
			sums[t] += acc
		}
	}

	return sums
}
