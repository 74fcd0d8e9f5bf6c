package harness

import (
	"context"
	"fmt"
	"time"

	pb "github.com/nimec77/hello-world-grpc/protos"
	"github.com/nimec77/hello-world-grpc/stats"
)

// defaultLoadRPS is the pacing target when none is configured.
const defaultLoadRPS = 10

// LoadStats is the aggregate record of a rate-paced run.
type LoadStats struct {
	stats.Summary

	TargetRPS float64 `json:"target_rps"`
	ActualRPS float64 `json:"actual_rps"`
}

// RunLoad issues sequential invocations for duration d, pacing toward rps
// invocations per second. Each iteration sleeps max(0, interval - call
// duration), so a slow call eats into the following sleep instead of letting
// drift accumulate. The loop ends on the wall-clock deadline, never on an
// iteration count; failures are recorded and the loop continues.
func (h *Harness) RunLoad(ctx context.Context, client pb.GreeterClient, d time.Duration, rps int) LoadStats {
	if rps <= 0 {
		rps = defaultLoadRPS
	}
	acc := stats.NewAccumulator()
	interval := time.Second / time.Duration(rps)

	start := time.Now()
	deadline := start.Add(d)

	for i := 0; time.Now().Before(deadline) && ctx.Err() == nil; i++ {
		res := h.Invoke(ctx, client, fmt.Sprintf("LoadTest%d", i))
		acc.Record(res.OK, res.Message, res.Duration)

		if sleep := interval - res.Duration; sleep > 0 {
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
			}
		}
	}

	elapsed := time.Since(start)
	ls := LoadStats{
		Summary:   acc.Summarize(elapsed),
		TargetRPS: float64(rps),
	}
	if elapsed > 0 {
		ls.ActualRPS = float64(ls.Total) / elapsed.Seconds()
	}
	return ls
}
