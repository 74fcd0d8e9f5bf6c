// Package harness drives test scenarios against a running Greeter service
// and reduces the outcomes into per-scenario aggregate records. All remote
// access goes through the generated GreeterClient capability; the harness
// never touches the transport directly.
package harness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/nimec77/hello-world-grpc/protos"
)

// Scenario names, as they appear as keys in the report.
const (
	ScenarioAll                 = "all"
	ScenarioSingle              = "single-request"
	ScenarioBatch               = "concurrent-batch"
	ScenarioErrors              = "error-conditions"
	ScenarioLoad                = "load"
	ScenarioStreamingBasic      = "streaming-basic"
	ScenarioStreamingConcurrent = "streaming-concurrent"
	ScenarioStreamingMixed      = "streaming-mixed"
)

// DefaultUnaryTimeout is the per-invocation ceiling when none is configured.
// It is well above the expected latency of a healthy SayHello call.
const DefaultUnaryTimeout = 5 * time.Second

// streamGrace is added to a collection duration to form the transport
// timeout of a streaming session, so the transport never times the session
// out at the same moment the collector intends to stop gracefully.
const streamGrace = 2 * time.Second

var (
	promRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "requests",
		Help: "Number of requests",
	})

	promSuccesses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "successes",
		Help: "Number of successful requests",
	})

	promLatencyHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "latency_ms",
		Help: "gRPC latency distributions in milliseconds.",
		// 50 exponential buckets ranging from 0.5 ms to 3 minutes
		Buckets: prometheus.ExponentialBuckets(0.5, 1.3, 50),
	})
)

func registerMetrics() {
	prometheus.MustRegister(promRequests)
	prometheus.MustRegister(promSuccesses)
	prometheus.MustRegister(promLatencyHistogram)
}

// Dialer opens a fresh client capability to the remote service. Orchestrators
// that need isolated connections (one per simulated client) call it once per
// worker; everything else shares a single client.
type Dialer func(ctx context.Context) (pb.GreeterClient, io.Closer, error)

// GRPCDialer returns a Dialer over an insecure gRPC channel to address.
func GRPCDialer(address string) Dialer {
	return func(ctx context.Context) (pb.GreeterClient, io.Closer, error) {
		conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, err
		}
		return pb.NewGreeterClient(conn), conn, nil
	}
}

// Harness executes scenarios against a Greeter reached through its Dialer.
type Harness struct {
	dial         Dialer
	unaryTimeout time.Duration
}

// NewHarness returns a Harness with the given per-invocation timeout;
// zero means DefaultUnaryTimeout.
func NewHarness(dial Dialer, unaryTimeout time.Duration) *Harness {
	if unaryTimeout <= 0 {
		unaryTimeout = DefaultUnaryTimeout
	}
	return &Harness{dial: dial, unaryTimeout: unaryTimeout}
}

// Report maps scenario names to their aggregate records.
type Report map[string]any

// Config selects and parameterizes the scenarios of one harness run.
type Config struct {
	Address        string
	Scenario       string
	Name           string
	Concurrency    int
	LoadDuration   time.Duration
	LoadRPS        int
	StreamDuration time.Duration
	StreamClients  int
	UnaryTimeout   time.Duration
	Mixed          MixedOptions
	MetricAddr     string
}

func (cfg *Config) normalize() {
	if cfg.Scenario == "" {
		cfg.Scenario = ScenarioAll
	}
	if cfg.Name == "" {
		cfg.Name = "TestUser"
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.LoadDuration <= 0 {
		cfg.LoadDuration = 10 * time.Second
	}
	if cfg.LoadRPS <= 0 {
		cfg.LoadRPS = defaultLoadRPS
	}
	if cfg.StreamDuration <= 0 {
		cfg.StreamDuration = 5 * time.Second
	}
	if cfg.StreamClients <= 0 {
		cfg.StreamClients = 3
	}
}

var knownScenarios = map[string]bool{
	ScenarioAll:                 true,
	ScenarioSingle:              true,
	ScenarioBatch:               true,
	ScenarioErrors:              true,
	ScenarioLoad:                true,
	ScenarioStreamingBasic:      true,
	ScenarioStreamingConcurrent: true,
	ScenarioStreamingMixed:      true,
}

// Run executes the selected scenario(s) and returns the report. Individual
// invocation failures never surface here; the returned error covers only
// top-level problems such as an unknown scenario name.
func (cfg Config) Run(ctx context.Context) (Report, error) {
	cfg.normalize()

	if !knownScenarios[cfg.Scenario] {
		return nil, fmt.Errorf("unknown scenario %q", cfg.Scenario)
	}

	if cfg.MetricAddr != "" {
		registerMetrics()
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			http.ListenAndServe(cfg.MetricAddr, nil)
		}()
	}

	h := NewHarness(GRPCDialer(cfg.Address), cfg.UnaryTimeout)

	client, closer, err := h.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", cfg.Address, err)
	}
	defer closer.Close()

	selected := func(name string) bool {
		return cfg.Scenario == ScenarioAll || cfg.Scenario == name
	}

	report := Report{}

	if selected(ScenarioSingle) {
		log.WithField("name", cfg.Name).Info("running single request scenario")
		res := h.Invoke(ctx, client, cfg.Name)
		report[ScenarioSingle] = SingleResult{
			Success:    res.OK,
			Response:   res.Message,
			DurationMs: float64(res.Duration) / float64(time.Millisecond),
		}
	}

	if selected(ScenarioBatch) {
		log.WithField("count", cfg.Concurrency).Info("running concurrent batch scenario")
		names := make([]string, cfg.Concurrency)
		for i := range names {
			names[i] = fmt.Sprintf("User%d", i)
		}
		report[ScenarioBatch] = h.RunBatch(ctx, client, cfg.Concurrency, names)
	}

	if selected(ScenarioErrors) {
		log.Info("running error conditions scenario")
		report[ScenarioErrors] = h.RunErrorConditions(ctx, client)
	}

	if selected(ScenarioLoad) {
		log.WithFields(log.Fields{
			"duration": cfg.LoadDuration,
			"rps":      cfg.LoadRPS,
		}).Info("running load scenario")
		report[ScenarioLoad] = h.RunLoad(ctx, client, cfg.LoadDuration, cfg.LoadRPS)
	}

	if selected(ScenarioStreamingBasic) {
		log.WithField("duration", cfg.StreamDuration).Info("running streaming scenario")
		report[ScenarioStreamingBasic] = h.CollectStream(ctx, client, cfg.StreamDuration)
	}

	if selected(ScenarioStreamingConcurrent) {
		log.WithFields(log.Fields{
			"clients":  cfg.StreamClients,
			"duration": cfg.StreamDuration,
		}).Info("running concurrent streaming scenario")
		report[ScenarioStreamingConcurrent] = h.RunStreamClients(ctx, cfg.StreamClients, cfg.StreamDuration)
	}

	if selected(ScenarioStreamingMixed) {
		log.WithField("duration", cfg.StreamDuration).Info("running mixed streaming scenario")
		report[ScenarioStreamingMixed] = h.RunMixed(ctx, client, cfg.StreamDuration, cfg.Mixed)
	}

	return report, nil
}

// SingleResult is the aggregate record of the single-request scenario.
type SingleResult struct {
	Success    bool    `json:"success"`
	Response   string  `json:"response"`
	DurationMs float64 `json:"duration_ms"`
}
