package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	pb "github.com/nimec77/hello-world-grpc/protos"
)

// MaxNameLength is the longest person name SayHello accepts.
const MaxNameLength = 100

// MaxStreamMessages caps a StreamTime session so the stream stays finite
// even when the consumer never stops it.
const MaxStreamMessages = 100

var (
	promRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "requests",
		Help: "Number of unary requests",
	})

	promSuccesses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "successes",
		Help: "Number of successful unary requests",
	})

	promValidationErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "validation_errors",
		Help: "Number of requests rejected by name validation",
	})

	promStreamsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streams_started",
		Help: "Number of time streams started",
	})

	promStreamMessages = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stream_messages",
		Help: "Number of time stream messages sent",
	})
)

func registerMetrics() {
	prometheus.MustRegister(promRequests)
	prometheus.MustRegister(promSuccesses)
	prometheus.MustRegister(promValidationErrors)
	prometheus.MustRegister(promStreamsStarted)
	prometheus.MustRegister(promStreamMessages)
}

// Greeter implements the hello_world.Greeter service: a validated unary
// greeting and a server-streaming clock.
type Greeter struct {
	pb.UnimplementedGreeterServer

	// streamInterval is the gap between StreamTime messages. The wire
	// contract is roughly one per second; tests shrink it.
	streamInterval time.Duration
}

// NewGreeter returns a Greeter streaming at the nominal one-second cadence.
func NewGreeter() *Greeter {
	return NewGreeterWithInterval(time.Second)
}

// NewGreeterWithInterval returns a Greeter streaming at the given cadence.
func NewGreeterWithInterval(interval time.Duration) *Greeter {
	return &Greeter{streamInterval: interval}
}

// validateName applies the person-name rules to a raw request name and
// returns the trimmed name.
func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", status.Error(codes.InvalidArgument, "person name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return "", status.Errorf(codes.InvalidArgument, "person name cannot exceed %d characters", MaxNameLength)
	}
	return name, nil
}

// SayHello validates the request name and greets the person.
func (g *Greeter) SayHello(ctx context.Context, req *pb.HelloRequest) (*pb.HelloReply, error) {
	start := time.Now()
	promRequests.Inc()

	name, err := validateName(req.GetName())
	if err != nil {
		promValidationErrors.Inc()
		log.WithFields(log.Fields{
			"method": "SayHello",
			"input":  req.GetName(),
			"error":  err,
		}).Warn("request validation failed")
		return nil, err
	}

	promSuccesses.Inc()
	log.WithFields(log.Fields{
		"method":      "SayHello",
		"name":        name,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("processed greeting request")

	return &pb.HelloReply{Message: "Hello, " + name + "!"}, nil
}

// StreamTime sends the server's current time as RFC3339 text once per
// interval until the client goes away or MaxStreamMessages have been sent.
func (g *Greeter) StreamTime(_ *pb.TimeRequest, stream pb.Greeter_StreamTimeServer) error {
	promStreamsStarted.Inc()
	log.WithField("method", "StreamTime").Info("starting time stream")

	ticker := time.NewTicker(g.streamInterval)
	defer ticker.Stop()

	for sent := 0; sent < MaxStreamMessages; sent++ {
		select {
		case <-stream.Context().Done():
			log.WithFields(log.Fields{
				"method": "StreamTime",
				"sent":   sent,
			}).Info("client went away, closing time stream")
			return nil
		case <-ticker.C:
		}

		resp := &pb.TimeResponse{Timestamp: time.Now().Format(time.RFC3339Nano)}
		if err := stream.Send(resp); err != nil {
			log.WithFields(log.Fields{
				"method": "StreamTime",
				"sent":   sent,
				"error":  err,
			}).Warn("time stream send failed")
			return err
		}
		promStreamMessages.Inc()
	}

	log.WithFields(log.Fields{
		"method": "StreamTime",
		"sent":   MaxStreamMessages,
	}).Info("time stream reached message cap")
	return nil
}

// Config holds everything needed to run the Greeter server.
type Config struct {
	Address        string
	MetricAddr     string
	StreamInterval time.Duration
}

func (cfg *Config) serveMetrics() {
	if cfg.MetricAddr != "" {
		registerMetrics()
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			http.HandleFunc("/health", healthHandler)
			http.ListenAndServe(cfg.MetricAddr, nil)
		}()
	}
}

// healthHandler answers HTTP health probes for load balancers that cannot
// speak the gRPC health protocol.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"healthy","service":"hello-world-grpc","timestamp":%q}`,
		time.Now().Format(time.RFC3339))
}

// NewServer builds a grpc.Server with the Greeter and the standard health
// service registered, the Greeter marked serving.
func (cfg Config) NewServer() *grpc.Server {
	interval := cfg.StreamInterval
	if interval <= 0 {
		interval = time.Second
	}

	s := grpc.NewServer()
	pb.RegisterGreeterServer(s, NewGreeterWithInterval(interval))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(pb.Greeter_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s
}

// Run serves the Greeter on cfg.Address until the listener fails.
func (cfg Config) Run() error {
	cfg.serveMetrics()

	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}

	log.WithField("address", cfg.Address).Info("starting gRPC server")
	return cfg.NewServer().Serve(lis)
}
