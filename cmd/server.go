package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nimec77/hello-world-grpc/server"
)

var serverCfg = server.Config{}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run the hello-world Greeter server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serverCfg.Run()
	},
}

func init() {
	RootCmd.AddCommand(serverCmd)
	flags := serverCmd.Flags()
	flags.StringVar(&serverCfg.Address, "address", "localhost:50051", "hostname:port to serve on")
	flags.StringVar(&serverCfg.MetricAddr, "metric-addr", "", "address to serve prometheus metrics on")
	flags.DurationVar(&serverCfg.StreamInterval, "stream-interval", time.Second, "gap between StreamTime messages")
}
