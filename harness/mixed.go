package harness

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	pb "github.com/nimec77/hello-world-grpc/protos"
)

// MixedOptions are the pacing knobs of the mixed-mode coordinator. The
// defaults mirror the nominal scenario: a one-second warm-up before unary
// traffic, one unary call every half second, and a two-second bounded join.
type MixedOptions struct {
	WarmUp      time.Duration
	SubInterval time.Duration
	JoinTimeout time.Duration
}

func (o *MixedOptions) normalize() {
	if o.WarmUp <= 0 {
		o.WarmUp = time.Second
	}
	if o.SubInterval <= 0 {
		o.SubInterval = 500 * time.Millisecond
	}
	if o.JoinTimeout <= 0 {
		o.JoinTimeout = 2 * time.Second
	}
}

// MixedStats is the aggregate record of a mixed streaming/unary run.
// StreamingCompleted distinguishes a drained background session from a
// timed-out join; when false, the streaming fields carry whatever state the
// background task had last written.
type MixedStats struct {
	UnaryRequests      int      `json:"unary_requests"`
	UnarySuccessful    int      `json:"unary_successful"`
	StreamingMessages  int      `json:"streaming_messages"`
	StreamingConnected bool     `json:"streaming_successful"`
	StreamingCompleted bool     `json:"streaming_completed"`
	Errors             []string `json:"errors"`
}

// RunMixed runs one streaming collector in the background while pacing unary
// calls in the foreground, both bounded by duration d. The warm-up is a soft
// ordering guarantee only: it gives the stream a head start but a slow
// establishment can still race the first unary call. The final join is
// bounded; a background task that has not finished by then is reported
// as-is, not waited for.
func (h *Harness) RunMixed(ctx context.Context, client pb.GreeterClient, d time.Duration, opts MixedOptions) MixedStats {
	opts.normalize()

	ms := MixedStats{Errors: []string{}}

	// The flag and counter are advisory: single writer in the background
	// task, read by the foreground for reporting only. No control flow
	// depends on their freshness.
	var streamingActive atomic.Bool
	var streamConnected atomic.Bool
	var streamMessages atomic.Int64

	done := make(chan StreamSession, 1)
	go func() {
		streamingActive.Store(true)
		defer streamingActive.Store(false)
		done <- h.collectStream(ctx, client, d,
			func() { streamConnected.Store(true) },
			func() { streamMessages.Add(1) },
		)
	}()

	start := time.Now()

	select {
	case <-time.After(opts.WarmUp):
	case <-ctx.Done():
	}

	limiter := rate.NewLimiter(rate.Every(opts.SubInterval), 1)
	deadline := start.Add(d)

	for i := 0; time.Now().Before(deadline) && ctx.Err() == nil; i++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		res := h.Invoke(ctx, client, fmt.Sprintf("MixedTest%d", i))
		ms.UnaryRequests++
		if res.OK {
			ms.UnarySuccessful++
		} else {
			ms.Errors = append(ms.Errors, res.Message)
		}
		log.WithFields(log.Fields{
			"unary_ok":         res.OK,
			"streaming_active": streamingActive.Load(),
		}).Debug("mixed-mode iteration")
	}

	select {
	case sess := <-done:
		ms.StreamingCompleted = true
		ms.StreamingConnected = sess.Connected
		ms.StreamingMessages = sess.MessagesReceived
		ms.Errors = append(ms.Errors, sess.Errors...)
	case <-time.After(opts.JoinTimeout):
		log.Warn("background stream did not finish within join timeout")
		ms.StreamingConnected = streamConnected.Load()
		ms.StreamingMessages = int(streamMessages.Load())
	}

	return ms
}
