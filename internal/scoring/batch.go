package scoring

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/types"
)

// AnalyzeBatch scores docs with at most limit concurrent workers (limit <= 0
// means unbounded). results[i] always corresponds to docs[i].
func (e *Engine) AnalyzeBatch(ctx context.Context, docs []string, limit int) ([]types.AnalysisResult, error) {
	results := make([]types.AnalysisResult, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = e.Analyze(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch analysis interrupted: %w", err)
	}
	return results, nil
}

// AnalyzeEach scores docs concurrently and hands each result to fn as soon as
// it is ready, in completion order. fn is always called from the calling
// goroutine. An error from fn stops the remaining work and is returned.
func (e *Engine) AnalyzeEach(ctx context.Context, docs []string, limit int, fn func(index int, result types.AnalysisResult) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type scored struct {
		index  int
		result types.AnalysisResult
	}
	out := make(chan scored)

	g, gCtx := errgroup.WithContext(runCtx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var waitErr error
	go func() {
		defer close(out)
		for i, doc := range docs {
			if gCtx.Err() != nil {
				break
			}
			g.Go(func() error {
				res := e.Analyze(doc)
				select {
				case out <- scored{index: i, result: res}:
					return nil
				case <-gCtx.Done():
					return gCtx.Err()
				}
			})
		}
		waitErr = g.Wait()
	}()

	var fnErr error
	for s := range out {
		if fnErr != nil {
			continue
		}
		if err := fn(s.index, s.result); err != nil {
			fnErr = err
			cancel()
		}
	}

	if fnErr != nil {
		return fnErr
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch analysis interrupted: %w", err)
	}
	if waitErr != nil {
		return fmt.Errorf("batch analysis interrupted: %w", waitErr)
	}
	return nil
}
