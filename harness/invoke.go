package harness

import (
	"context"
	"time"

	pb "github.com/nimec77/hello-world-grpc/protos"
)

// InvocationResult is the outcome of one unary call: the reply text on
// success, the error text otherwise, and the measured wall-clock duration.
// Immutable once produced.
type InvocationResult struct {
	OK       bool
	Message  string
	Duration time.Duration
}

// Invoke performs one SayHello call bounded by the harness timeout. Every
// failure path, validation rejections and transport errors alike, is
// captured in the result; Invoke never fails to its caller.
func (h *Harness) Invoke(ctx context.Context, client pb.GreeterClient, name string) InvocationResult {
	start := time.Now()

	cctx, cancel := context.WithTimeout(ctx, h.unaryTimeout)
	defer cancel()

	promRequests.Inc()
	reply, err := client.SayHello(cctx, &pb.HelloRequest{Name: name})
	elapsed := time.Since(start)

	if err != nil {
		return InvocationResult{Message: err.Error(), Duration: elapsed}
	}

	promSuccesses.Inc()
	promLatencyHistogram.Observe(float64(elapsed) / float64(time.Millisecond))
	return InvocationResult{OK: true, Message: reply.GetMessage(), Duration: elapsed}
}
