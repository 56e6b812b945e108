// Package batch implements the bounded worker-pool fan-out that turns a
// list of raw URL lines into ordered classification results, per spec.md
// §5's batch-processing model: one *index.QueryContext per worker,
// allocated once at pool startup and reused for every URL that worker
// evaluates, so steady-state throughput does no allocation beyond what the
// URL parser itself needs.
package batch

import (
	"context"
	"sync"

	"github.com/omirandette/rule-engine/pkg/engine"
	"github.com/omirandette/rule-engine/pkg/index"
	"github.com/omirandette/rule-engine/pkg/urlx"
)

// NoMatch and InvalidURL are the two fixed labels a processed URL line can
// carry besides a matching rule's result string, per spec.md §6's external
// interface.
const (
	NoMatch    = "NO_MATCH"
	InvalidURL = "INVALID_URL"
)

// Result is one line's classification outcome, keeping the original input
// line alongside it for reporting.
type Result struct {
	URL    string
	Result string
}

// Process classifies every line in urls against eng, fanning work out
// across workers goroutines and returning results in the same order as
// urls. workers <= 0 is treated as 1. Process returns early with whatever
// results were completed if ctx is cancelled before all lines finish.
func Process(ctx context.Context, eng *engine.Engine, urls []string, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(urls) {
		workers = len(urls)
	}
	if workers == 0 {
		return nil
	}

	results := make([]Result, len(urls))
	indices := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			qctx := eng.NewQueryContext()
			for i := range indices {
				results[i] = classify(eng, qctx, urls[i])
			}
		}()
	}

feed:
	for i := range urls {
		select {
		case indices <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	return results
}

func classify(eng *engine.Engine, qctx *index.QueryContext, raw string) Result {
	parsed, err := urlx.Parse(raw)
	if err != nil {
		return Result{URL: raw, Result: InvalidURL}
	}
	if outcome, ok := eng.Evaluate(parsed, qctx); ok {
		return Result{URL: raw, Result: outcome}
	}
	return Result{URL: raw, Result: NoMatch}
}
