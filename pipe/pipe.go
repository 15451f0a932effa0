package pipe

import "context"

// Op is the common pipe operation. Can be composed into Ops and run as a single unit
type Op interface {
	Do(ctx context.Context) error
}

// OpFunc makes it easy to wrap an anonymous function into an Op
type OpFunc func(ctx context.Context) error

// Do implements the Op interface
func (o OpFunc) Do(ctx context.Context) error {
	return o(ctx)
}

// Ops can run a slice of Op's in series, stopping on the first error or when ctx is done
type Ops []Op

// Do implements the Op interface
func (ops Ops) Do(ctx context.Context) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op.Do(ctx); err != nil {
			return err
		}
	}
	return nil
}

// OpFuncs makes it easy to wrap a slice of functions into an Op
type OpFuncs []func(ctx context.Context) error

// Do implements the Op interface
func (ops OpFuncs) Do(ctx context.Context) error {
	converted := make(Ops, len(ops))
	for i, op := range ops {
		converted[i] = OpFunc(op)
	}
	return converted.Do(ctx)
}
