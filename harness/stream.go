package harness

import (
	"context"
	"io"
	"time"

	pb "github.com/nimec77/hello-world-grpc/protos"
	"github.com/nimec77/hello-world-grpc/stats"
)

// StreamSession is the aggregate record of one streaming collection.
// Connected reflects stream establishment only; a session can be connected
// with zero messages when the cutoff elapses before the first message.
type StreamSession struct {
	Connected        bool                `json:"connected"`
	MessagesReceived int                 `json:"messages_received"`
	Timestamps       []string            `json:"timestamps"`
	Intervals        []time.Duration     `json:"-"`
	IntervalStats    stats.IntervalStats `json:"intervals"`
	Errors           []string            `json:"errors"`
}

// CollectStream consumes StreamTime messages for duration d. The cutoff is
// a wall-clock deadline checked before recording each message: reaching it
// means breaking out of the consumption loop, not cancelling the call, and a
// message that arrives after the cutoff is discarded rather than recorded.
// Intervals are measured between wall-clock arrival times, not between the
// carried timestamps.
func (h *Harness) CollectStream(ctx context.Context, client pb.GreeterClient, d time.Duration) StreamSession {
	return h.collectStream(ctx, client, d, nil, nil)
}

// collectStream is CollectStream with optional progress hooks, used by the
// mixed-mode coordinator to observe a session that might outlive its join
// window. onConnect fires once after establishment, onMessage after each
// recorded message.
func (h *Harness) collectStream(
	ctx context.Context,
	client pb.GreeterClient,
	d time.Duration,
	onConnect func(),
	onMessage func(),
) StreamSession {
	sess := StreamSession{
		Timestamps: []string{},
		Errors:     []string{},
	}

	start := time.Now()
	deadline := start.Add(d)

	// The transport timeout exceeds the collection duration so the session
	// is never torn down at the same moment the collector intends to stop.
	// It also bounds a Recv blocked past the cutoff with nothing arriving.
	sctx, cancel := context.WithTimeout(ctx, d+streamGrace)
	defer cancel()

	stream, err := client.StreamTime(sctx, &pb.TimeRequest{})
	if err != nil {
		sess.Errors = append(sess.Errors, err.Error())
		sess.IntervalStats = stats.Intervals(sess.Intervals)
		return sess
	}

	sess.Connected = true
	if onConnect != nil {
		onConnect()
	}

	var prev time.Time
	for {
		if !time.Now().Before(deadline) {
			break
		}

		msg, err := stream.Recv()
		now := time.Now()

		if err == io.EOF {
			break
		}
		if err != nil {
			if now.After(deadline) {
				// The cutoff elapsed while blocked; not a session error.
				break
			}
			sess.Errors = append(sess.Errors, err.Error())
			break
		}
		if now.After(deadline) {
			break
		}

		sess.Timestamps = append(sess.Timestamps, msg.GetTimestamp())
		if !prev.IsZero() {
			sess.Intervals = append(sess.Intervals, now.Sub(prev))
		}
		prev = now
		if onMessage != nil {
			onMessage()
		}
	}

	sess.MessagesReceived = len(sess.Timestamps)
	sess.IntervalStats = stats.Intervals(sess.Intervals)
	return sess
}
