package viewstate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Join runs fa and fb concurrently. Both must succeed; the first failure
// cancels the context handed to the other and is returned.
func Join[A, B any](ctx context.Context, fa func(context.Context) (A, error), fb func(context.Context) (B, error)) (A, B, error) {
	g, gctx := errgroup.WithContext(ctx)

	var a A
	var b B
	g.Go(func() error {
		var err error
		a, err = fa(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = fb(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		var za A
		var zb B
		return za, zb, err
	}
	return a, b, nil
}
