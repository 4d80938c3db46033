// Package commands implements the routedom command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/jackielii/routedom/internal/config"
)

// Execute runs the root command. Without a subcommand it serves the site.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "routedom",
		Short:         "Serve the create-route-dom site",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.FromEnv()
			if err != nil {
				return err
			}
			// flags set on the command line win over the environment
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				cfg.Addr = env.Addr
			}
			if !flags.Changed("base-path") {
				cfg.BasePath = env.BasePath
			}
			if !flags.Changed("mount-id") {
				cfg.MountID = env.MountID
			}
			if !flags.Changed("title") {
				cfg.Title = env.Title
			}
			if !flags.Changed("log-level") {
				cfg.LogLevel = env.LogLevel
			}
			if !flags.Changed("log-format") {
				cfg.LogFormat = env.LogFormat
			}
			if !flags.Changed("rate-limit") {
				cfg.RateLimit = env.RateLimit
			}
			if !flags.Changed("rate-burst") {
				cfg.RateBurst = env.RateBurst
			}
			if !flags.Changed("trust-proxy") {
				cfg.TrustProxy = env.TrustProxy
			}
			if !flags.Changed("shutdown-timeout") {
				cfg.ShutdownTimeout = env.ShutdownTimeout
			}
			return cfg.Validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	pf.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "path prefix every page is served under")
	pf.StringVar(&cfg.MountID, "mount-id", cfg.MountID, "id of the element the app is mounted into")
	pf.StringVar(&cfg.Title, "title", cfg.Title, "site title")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	pf.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests per second per client, 0 disables")
	pf.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "burst size of the per client rate limit")
	pf.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "take the client address from X-Forwarded-For and X-Real-IP")
	pf.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests")

	serve := serveCmd(&cfg)
	root.RunE = serve.RunE
	root.AddCommand(serve, routesCmd(&cfg))
	return root
}
