package search

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summary aggregates a run.
type Summary struct {
	Files   int   // Files attempted
	Failed  int   // Files that could not be read or decoded
	Matched int   // Files with at least one match
	Matches int   // Matching records across all files
	Bytes   int64 // Bytes read
}

// Run searches paths with up to cfg.Workers files in flight and calls emit
// for each result in the order of paths, so output is identical to a
// sequential run. Per-file errors are logged and passed to emit; an error
// returned by emit, or cancellation of ctx, stops the run.
func (s *Searcher) Run(ctx context.Context, paths []string, emit func(FileResult) error) (Summary, error) {
	var sum Summary

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	slots := make([]chan FileResult, len(paths))
	for i := range slots {
		slots[i] = make(chan FileResult, 1)
	}

	// window caps how many results may be in flight or waiting ahead of
	// the consumer, so one slow file does not buffer the rest of the tree.
	window := make(chan struct{}, s.cfg.Workers)

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range paths {
			i, path := i, path
			select {
			case window <- struct{}{}:
			case <-gctx.Done():
				for j := i; j < len(paths); j++ {
					slots[j] <- FileResult{Path: paths[j], Err: gctx.Err()}
				}
				return
			}
			g.Go(func() error {
				slots[i] <- s.SearchFile(gctx, path)
				return nil
			})
		}
	}()

	var emitErr error
	for i := range slots {
		res := <-slots[i]
		if res.Err != nil && ctx.Err() != nil {
			emitErr = ctx.Err()
			break
		}
		<-window
		sum.Files++
		sum.Bytes += res.Size

		if res.Err != nil {
			sum.Failed++
			s.log.Warn("skipping file", "path", res.Path, "error", res.Err)
		} else if len(res.Matches) > 0 {
			sum.Matched++
			sum.Matches += len(res.Matches)
		}

		if err := emit(res); err != nil {
			emitErr = err
			cancel()
			break
		}
	}

	<-launched
	_ = g.Wait()
	return sum, emitErr
}
