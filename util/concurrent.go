package util

import (
	"cmp"
	"slices"

	"golang.org/x/sync/errgroup"
)

type concurrentOutputWithOrdering[T any] struct {
	order  int
	output T
}

// ConcurrentMapFuncWithError runs f over inputs and returns the outputs in input order.
// concurrency 0 runs sequentially and a negative value removes the limit.
func ConcurrentMapFuncWithError[Tin any, Tout any](inputs []Tin, concurrency int, f func(Tin) (Tout, error)) ([]Tout, error) {
	eg := errgroup.Group{}
	if concurrency == 0 {
		eg.SetLimit(1)
	} else if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	ch := make(chan concurrentOutputWithOrdering[Tout], len(inputs))
	for i, in := range inputs {
		eg.Go(func() error {
			out, err := f(in)
			if err != nil {
				return err
			}
			ch <- concurrentOutputWithOrdering[Tout]{i, out}
			return nil
		})
	}

	err := eg.Wait()
	close(ch)
	if err != nil {
		return nil, err
	}

	tmp := make([]concurrentOutputWithOrdering[Tout], 0, len(inputs))
	for t := range ch {
		tmp = append(tmp, t)
	}

	slices.SortFunc(tmp, func(a, b concurrentOutputWithOrdering[Tout]) int {
		return cmp.Compare(a.order, b.order)
	})

	return TransformSlice(tmp, func(t concurrentOutputWithOrdering[Tout]) Tout {
		return t.output
	}), nil
}
