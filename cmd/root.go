package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var RootCmd = &cobra.Command{
	Use:   "hello-world-grpc [client | server]",
	Short: "A test harness and server for the hello-world Greeter gRPC service.",
	Long: `A test harness and server for the hello-world Greeter gRPC service.

The client subcommand exercises a running Greeter under controlled
concurrency, pacing, and timing, and reports per-scenario statistics.
The server subcommand runs the Greeter itself.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		log.SetLevel(level)

		switch logFormat {
		case "json":
			log.SetFormatter(&log.JSONFormatter{})
		case "text":
			log.SetFormatter(&log.TextFormatter{})
		default:
			return fmt.Errorf("invalid log format %q, must be one of: text, json", logFormat)
		}
		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "info", "log level [trace|debug|info|warn|error]")
	flags.StringVar(&logFormat, "log-format", "text", "log format [text|json]")
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
