package readmet

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseManyFiles decodes multiple .part.met files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining work and is returned; each individual
// decode stays single-threaded.
func ParseManyFiles(ctx context.Context, options *ParseOptions, paths ...string) ([]*PartMet, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*PartMet, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			result, err := ParseFile(path, options)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
