package main

import (
	"os"

	"github.com/DieOfCode/haproxy-statsd/internal/application"
	"github.com/DieOfCode/haproxy-statsd/internal/configuration"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		once       bool
	)

	root := &cobra.Command{
		Use:   "haproxy-statsd",
		Short: "Report haproxy stats to statsd",
		Long: `haproxy-statsd reads haproxy stats from the stats socket or the CSV
stats page and sends every numeric stat to statsd over UDP.

Config file format (TOML). String values must be quoted, so older INI style
files with bare values need quotes added:

  [haproxy-statsd]
  haproxy_url = "http://127.0.0.1:1936/;csv"
  haproxy_user = ""
  haproxy_password = ""
  statsd_host = "127.0.0.1"
  statsd_port = 8125
  statsd_namespace = "haproxy.(HOSTNAME)"
  interval = 5.0`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Run(application.Options{
				ConfigPath:     configPath,
				ConfigRequired: cmd.Flags().Changed("config"),
				Once:           once,
				Output:         cmd.OutOrStdout(),
			})
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", configuration.DefaultConfigPath, "Config file location")
	root.Flags().BoolVarP(&once, "once", "1", false, "Run once and exit")

	return root
}
