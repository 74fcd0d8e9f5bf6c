package harness_test

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/nimec77/hello-world-grpc/harness"
	pb "github.com/nimec77/hello-world-grpc/protos"
)

// stubGreeter is an in-memory GreeterClient with the same validation rules
// as the real service, plus knobs for latency and stream shape. A negative
// streamCount yields messages until the caller stops receiving.
type stubGreeter struct {
	unaryDelay  time.Duration
	streamDelay time.Duration
	streamCount int
	streamErr   error

	calls atomic.Int64
}

func (s *stubGreeter) SayHello(ctx context.Context, in *pb.HelloRequest, _ ...grpc.CallOption) (*pb.HelloReply, error) {
	s.calls.Add(1)
	if s.unaryDelay > 0 {
		select {
		case <-time.After(s.unaryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	name := strings.TrimSpace(in.GetName())
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "person name cannot be empty")
	}
	if len(name) > 100 {
		return nil, status.Error(codes.InvalidArgument, "person name cannot exceed 100 characters")
	}
	return &pb.HelloReply{Message: "Hello, " + name + "!"}, nil
}

func (s *stubGreeter) StreamTime(ctx context.Context, _ *pb.TimeRequest, _ ...grpc.CallOption) (grpc.ServerStreamingClient[pb.TimeResponse], error) {
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	return &stubTimeStream{ctx: ctx, remaining: s.streamCount, delay: s.streamDelay}, nil
}

type stubTimeStream struct {
	ctx       context.Context
	remaining int
	delay     time.Duration
}

func (st *stubTimeStream) Recv() (*pb.TimeResponse, error) {
	if st.remaining == 0 {
		return nil, io.EOF
	}
	if st.delay > 0 {
		select {
		case <-time.After(st.delay):
		case <-st.ctx.Done():
			return nil, st.ctx.Err()
		}
	}
	st.remaining--
	return &pb.TimeResponse{Timestamp: time.Now().Format(time.RFC3339Nano)}, nil
}

func (st *stubTimeStream) Header() (metadata.MD, error) { return nil, nil }
func (st *stubTimeStream) Trailer() metadata.MD         { return nil }
func (st *stubTimeStream) CloseSend() error             { return nil }
func (st *stubTimeStream) Context() context.Context     { return st.ctx }
func (st *stubTimeStream) SendMsg(any) error            { return nil }
func (st *stubTimeStream) RecvMsg(any) error            { return nil }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func stubDialer(s *stubGreeter) harness.Dialer {
	return func(context.Context) (pb.GreeterClient, io.Closer, error) {
		return s, nopCloser{}, nil
	}
}

func newStubHarness(s *stubGreeter, timeout time.Duration) *harness.Harness {
	return harness.NewHarness(stubDialer(s), timeout)
}

func TestInvokeSuccess(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	res := h.Invoke(context.Background(), stub, "Alice")
	require.True(t, res.OK)
	assert.Equal(t, "Hello, Alice!", res.Message)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestInvokeValidationFailure(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	res := h.Invoke(context.Background(), stub, "   ")
	require.False(t, res.OK)
	assert.Contains(t, res.Message, "cannot be empty")
}

func TestInvokeTimeout(t *testing.T) {
	stub := &stubGreeter{unaryDelay: time.Second}
	h := newStubHarness(stub, 50*time.Millisecond)

	res := h.Invoke(context.Background(), stub, "Alice")
	require.False(t, res.OK)
	assert.Contains(t, res.Message, "deadline")
	assert.GreaterOrEqual(t, res.Duration, 50*time.Millisecond)
}

func TestBatchAllSucceed(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	names := []string{"User0", "User1", "User2", "User3", "User4"}
	sum := h.RunBatch(context.Background(), stub, len(names), names)

	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 5, sum.Successful)
	assert.Equal(t, 0, sum.Failed)
	assert.Empty(t, sum.Errors)
	assert.LessOrEqual(t, sum.MinDuration, sum.AvgDuration)
	assert.LessOrEqual(t, sum.AvgDuration, sum.MaxDuration)
}

func TestBatchCyclesNames(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	sum := h.RunBatch(context.Background(), stub, 7, []string{"Alice", "Bob"})
	assert.Equal(t, 7, sum.Total)
	assert.Equal(t, 7, sum.Successful)
	assert.EqualValues(t, 7, stub.calls.Load())
}

func TestBatchMixedOutcomes(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	// Cycling "Alice","" over 6 tasks: half succeed, half are rejected.
	sum := h.RunBatch(context.Background(), stub, 6, []string{"Alice", ""})
	assert.Equal(t, 6, sum.Total)
	assert.Equal(t, 3, sum.Successful)
	assert.Equal(t, 3, sum.Failed)
	assert.Len(t, sum.Errors, 3)
}

func TestBatchLargerThanPool(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	sum := h.RunBatch(context.Background(), stub, 120, nil)
	assert.Equal(t, 120, sum.Total)
	assert.Equal(t, 120, sum.Successful)
	assert.EqualValues(t, 120, stub.calls.Load())
}

func TestBatchZero(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	sum := h.RunBatch(context.Background(), stub, 0, nil)
	assert.Equal(t, 0, sum.Total)
	assert.Equal(t, time.Duration(0), sum.MinDuration)
}

func TestLoadPacing(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	ls := h.RunLoad(context.Background(), stub, 300*time.Millisecond, 50)

	// 50 rps over 300ms targets ~15 calls; allow for scheduler slop.
	assert.GreaterOrEqual(t, ls.Total, 8)
	assert.LessOrEqual(t, ls.Total, 25)
	assert.Equal(t, ls.Total, ls.Successful)
	assert.Equal(t, float64(50), ls.TargetRPS)
	assert.Greater(t, ls.ActualRPS, float64(0))
	assert.GreaterOrEqual(t, ls.TotalDuration, 300*time.Millisecond)
}

func TestLoadSlowCalls(t *testing.T) {
	// Calls slower than the pacing interval: the loop runs back to back
	// and still ends on the wall-clock deadline.
	stub := &stubGreeter{unaryDelay: 30 * time.Millisecond}
	h := newStubHarness(stub, 0)

	ls := h.RunLoad(context.Background(), stub, 300*time.Millisecond, 100)
	assert.GreaterOrEqual(t, ls.Total, 5)
	assert.LessOrEqual(t, ls.Total, 15)
	assert.GreaterOrEqual(t, ls.TotalDuration, 300*time.Millisecond)
}

func TestLoadZeroRateFallsBack(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	ls := h.RunLoad(context.Background(), stub, 150*time.Millisecond, 0)
	assert.Equal(t, float64(10), ls.TargetRPS)
	assert.GreaterOrEqual(t, ls.Total, 1)
}

func TestLoadCancelled(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ls := h.RunLoad(ctx, stub, time.Second, 10)
	assert.Equal(t, 0, ls.Total)
}

func TestCollectStream(t *testing.T) {
	stub := &stubGreeter{streamCount: -1, streamDelay: 20 * time.Millisecond}
	h := newStubHarness(stub, 0)

	sess := h.CollectStream(context.Background(), stub, 210*time.Millisecond)

	require.True(t, sess.Connected)
	assert.Empty(t, sess.Errors)
	assert.GreaterOrEqual(t, sess.MessagesReceived, 6)
	assert.LessOrEqual(t, sess.MessagesReceived, 14)
	assert.Len(t, sess.Timestamps, sess.MessagesReceived)
	assert.Equal(t, sess.MessagesReceived-1, sess.IntervalStats.Count)

	for _, ts := range sess.Timestamps {
		_, err := time.Parse(time.RFC3339Nano, ts)
		assert.NoError(t, err)
	}
	for _, gap := range sess.Intervals {
		assert.Greater(t, gap, time.Duration(0))
	}
}

func TestCollectStreamConnectFailure(t *testing.T) {
	stub := &stubGreeter{streamErr: status.Error(codes.Unavailable, "connection refused")}
	h := newStubHarness(stub, 0)

	sess := h.CollectStream(context.Background(), stub, 100*time.Millisecond)
	assert.False(t, sess.Connected)
	assert.Equal(t, 0, sess.MessagesReceived)
	require.Len(t, sess.Errors, 1)
	assert.Contains(t, sess.Errors[0], "connection refused")
}

func TestCollectStreamEndsOnEOF(t *testing.T) {
	stub := &stubGreeter{streamCount: 3, streamDelay: 5 * time.Millisecond}
	h := newStubHarness(stub, 0)

	sess := h.CollectStream(context.Background(), stub, time.Second)
	assert.True(t, sess.Connected)
	assert.Equal(t, 3, sess.MessagesReceived)
	assert.Empty(t, sess.Errors)
}

func TestRunStreamClients(t *testing.T) {
	stub := &stubGreeter{streamCount: 4, streamDelay: 5 * time.Millisecond}
	h := newStubHarness(stub, 0)

	agg := h.RunStreamClients(context.Background(), 3, 500*time.Millisecond)

	assert.Equal(t, 3, agg.Clients)
	assert.Equal(t, 3, agg.Successful)
	assert.Equal(t, 0, agg.Failed)
	assert.Equal(t, 12, agg.TotalMessages)
	require.Len(t, agg.Outcomes, 3)

	seen := map[int]bool{}
	for _, out := range agg.Outcomes {
		seen[out.ClientID] = true
		assert.True(t, out.Connected)
		assert.Equal(t, 4, out.MessagesReceived)
	}
	assert.Len(t, seen, 3)
}

func TestRunStreamClientsDialFailure(t *testing.T) {
	stub := &stubGreeter{streamCount: 4, streamDelay: 5 * time.Millisecond}

	var dials atomic.Int64
	dial := func(context.Context) (pb.GreeterClient, io.Closer, error) {
		if dials.Add(1) == 2 {
			return nil, nil, status.Error(codes.Unavailable, "no route")
		}
		return stub, nopCloser{}, nil
	}
	h := harness.NewHarness(dial, 0)

	agg := h.RunStreamClients(context.Background(), 3, 500*time.Millisecond)
	assert.Equal(t, 2, agg.Successful)
	assert.Equal(t, 1, agg.Failed)
	assert.Equal(t, 8, agg.TotalMessages)
}

func TestRunMixed(t *testing.T) {
	stub := &stubGreeter{streamCount: 5, streamDelay: 10 * time.Millisecond}
	h := newStubHarness(stub, 0)

	ms := h.RunMixed(context.Background(), stub, 400*time.Millisecond, harness.MixedOptions{
		WarmUp:      50 * time.Millisecond,
		SubInterval: 50 * time.Millisecond,
		JoinTimeout: 500 * time.Millisecond,
	})

	assert.True(t, ms.StreamingCompleted)
	assert.True(t, ms.StreamingConnected)
	assert.Equal(t, 5, ms.StreamingMessages)
	assert.GreaterOrEqual(t, ms.UnaryRequests, 3)
	assert.Equal(t, ms.UnaryRequests, ms.UnarySuccessful)
	assert.Empty(t, ms.Errors)
}

func TestRunMixedJoinTimeout(t *testing.T) {
	// The stream never yields, so the background collector is still blocked
	// in Recv when the bounded join expires.
	stub := &stubGreeter{streamCount: -1, streamDelay: 10 * time.Second}
	h := newStubHarness(stub, 0)

	ms := h.RunMixed(context.Background(), stub, 200*time.Millisecond, harness.MixedOptions{
		WarmUp:      20 * time.Millisecond,
		SubInterval: 50 * time.Millisecond,
		JoinTimeout: 100 * time.Millisecond,
	})

	assert.False(t, ms.StreamingCompleted)
	assert.True(t, ms.StreamingConnected)
	assert.Equal(t, 0, ms.StreamingMessages)
	assert.GreaterOrEqual(t, ms.UnaryRequests, 1)
}

func TestErrorConditions(t *testing.T) {
	stub := &stubGreeter{}
	h := newStubHarness(stub, 0)

	agg := h.RunErrorConditions(context.Background(), stub)

	assert.Equal(t, 4, agg.Cases)
	assert.Equal(t, 4, agg.Passed)
	assert.Equal(t, 0, agg.Failed)
	require.Len(t, agg.Results, 4)

	assert.False(t, agg.Results[0].Success) // empty
	assert.False(t, agg.Results[1].Success) // whitespace
	assert.False(t, agg.Results[2].Success) // too long
	assert.True(t, agg.Results[3].Success)
	assert.Equal(t, "Hello, Valid Name!", agg.Results[3].Response)
}

func TestConfigRunUnknownScenario(t *testing.T) {
	cfg := harness.Config{Address: "localhost:0", Scenario: "bogus"}
	_, err := cfg.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
}
