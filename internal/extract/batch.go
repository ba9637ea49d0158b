package extract

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/dealscan/dealscan/constants"
)

// Batch processes many documents through one orchestrator. Throughput
// is throttled to respect external rate limits. Parallelism, when
// enabled, is across documents only; adapter ordering inside a
// document is never touched.
type Batch struct {
	orch    *Orchestrator
	limiter *rate.Limiter
	workers int
	logger  *slog.Logger
}

// NewBatch builds a batch runner. docsPerMin <= 0 disables throttling;
// workers <= 1 runs documents sequentially.
func NewBatch(orch *Orchestrator, docsPerMin float64, workers int, logger *slog.Logger) *Batch {
	var limiter *rate.Limiter
	if docsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(docsPerMin/60.0), 1)
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{orch: orch, limiter: limiter, workers: workers, logger: logger}
}

// Process extracts every request and returns results aligned by index.
// One document's failure never stops the rest: a fatal orchestrator
// error becomes that document's failed Result and the batch moves on.
func (b *Batch) Process(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, req := range reqs {
		g.Go(func() error {
			if b.limiter != nil {
				if err := b.limiter.Wait(gctx); err != nil {
					results[i] = emptyResult(req, constants.MethodError, err.Error())
					return nil
				}
			}
			res, err := b.orch.Extract(gctx, req)
			if err != nil {
				b.logger.Error("batch.document_failed",
					"file", req.FileName, "error", err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}
