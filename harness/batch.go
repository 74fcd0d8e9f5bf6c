package harness

import (
	"context"
	"fmt"
	"sync"
	"time"

	pb "github.com/nimec77/hello-world-grpc/protos"
	"github.com/nimec77/hello-world-grpc/stats"
)

// maxBatchWorkers bounds the worker pool of a batch run.
const maxBatchWorkers = 50

// RunBatch dispatches n independent invocations across a worker pool of
// min(n, 50) and folds results as they complete. Names are cycled when the
// list is shorter than n; an empty list falls back to generated User names.
// Every one of the n tasks contributes exactly once regardless of completion
// order, and a worker panic counts as a failed invocation rather than
// aborting the batch.
func (h *Harness) RunBatch(ctx context.Context, client pb.GreeterClient, n int, names []string) stats.Summary {
	acc := stats.NewAccumulator()
	if n <= 0 {
		return acc.Summarize(0)
	}

	workers := n
	if workers > maxBatchWorkers {
		workers = maxBatchWorkers
	}

	jobs := make(chan string)
	results := make(chan InvocationResult)

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- h.safeInvoke(ctx, client, name)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("User%d", i)
			if len(names) > 0 {
				name = names[i%len(names)]
			}
			jobs <- name
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		acc.Record(res.OK, res.Message, res.Duration)
	}

	return acc.Summarize(time.Since(start))
}

// safeInvoke shields the worker pool from anything Invoke's callees might
// panic with; an orchestration-level defect becomes a failed result.
func (h *Harness) safeInvoke(ctx context.Context, client pb.GreeterClient, name string) (res InvocationResult) {
	defer func() {
		if r := recover(); r != nil {
			res = InvocationResult{Message: fmt.Sprintf("worker failure: %v", r)}
		}
	}()
	return h.Invoke(ctx, client, name)
}
