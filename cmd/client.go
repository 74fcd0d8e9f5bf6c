package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nimec77/hello-world-grpc/harness"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "run harness scenarios against a Greeter service",
	Args:  cobra.NoArgs,
	RunE:  runClient,
}

func init() {
	RootCmd.AddCommand(clientCmd)
	flags := clientCmd.Flags()
	flags.String("address", "localhost:50051", "address of the Greeter service")
	flags.String("test", harness.ScenarioAll,
		"scenario to run [all|single-request|concurrent-batch|error-conditions|load|streaming-basic|streaming-concurrent|streaming-mixed]")
	flags.String("name", "TestUser", "name for the single request scenario")
	flags.Int("concurrency", 10, "number of concurrent batch requests")
	flags.Duration("load-duration", 10*time.Second, "how long to run the load scenario")
	flags.Int("load-rps", 10, "target requests per second for the load scenario")
	flags.Duration("stream-duration", 5*time.Second, "how long to collect each stream")
	flags.Int("stream-clients", 3, "number of concurrent streaming clients")
	flags.Duration("timeout", harness.DefaultUnaryTimeout, "per-request timeout")
	flags.Duration("mixed-warmup", time.Second, "mixed mode warm-up before unary traffic starts")
	flags.Duration("mixed-interval", 500*time.Millisecond, "mixed mode gap between unary calls")
	flags.Duration("mixed-join-timeout", 2*time.Second, "mixed mode bound on joining the background stream")
	flags.String("output", "", "write the JSON report to this file as well as stdout")
	flags.String("metric-addr", "", "address to serve prometheus metrics on")
	flags.String("config", "", "optional YAML config file; flags and HELLO_* env vars override it")
}

func runClient(cmd *cobra.Command, args []string) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("HELLO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		log.WithField("file", v.ConfigFileUsed()).Info("loaded config file")
	}

	cfg := harness.Config{
		Address:        v.GetString("address"),
		Scenario:       v.GetString("test"),
		Name:           v.GetString("name"),
		Concurrency:    v.GetInt("concurrency"),
		LoadDuration:   v.GetDuration("load-duration"),
		LoadRPS:        v.GetInt("load-rps"),
		StreamDuration: v.GetDuration("stream-duration"),
		StreamClients:  v.GetInt("stream-clients"),
		UnaryTimeout:   v.GetDuration("timeout"),
		Mixed: harness.MixedOptions{
			WarmUp:      v.GetDuration("mixed-warmup"),
			SubInterval: v.GetDuration("mixed-interval"),
			JoinTimeout: v.GetDuration("mixed-join-timeout"),
		},
		MetricAddr: v.GetString("metric-addr"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := cfg.Run(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	fmt.Println(string(data))

	if out := v.GetString("output"); out != "" {
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("writing report to %s: %w", out, err)
		}
		log.WithField("file", out).Info("report written")
	}

	return nil
}
