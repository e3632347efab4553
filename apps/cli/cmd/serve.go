package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/userportal/packages/web"
)

var (
	listenFlag string
	watchFlag  bool
	rateFlag   float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser form UI",
	Long: `Serve the user management form on a local address.

The page has the base URL and token in a sidebar, an action selector
and the fields of the selected action. Each press of the action button
sends exactly one request and shows the status and response body.

Examples:
  userportal serve
  userportal serve --listen :8501 --url http://localhost:8000
  userportal serve --watch --rate 2`,
	Args: cobra.NoArgs,
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().StringVarP(&listenFlag, "listen", "l", "", "Address to listen on (default 127.0.0.1:8501) (env: USERPORTAL_LISTEN)")
	serveCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Reload the config file when it changes")
	serveCmd.Flags().Float64Var(&rateFlag, "rate", 0, "Maximum submissions per second (0 = unlimited)")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	fileCfg, path, err := loadFileConfig()
	if err != nil {
		return err
	}
	over, err := overrides(cmd.Flags())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		over.Listen = listenFlag
	}
	if rateFlag < 0 {
		return usageError(fmt.Errorf("invalid --rate %v: must not be negative", rateFlag))
	}
	over.RateLimit = rateFlag

	logger := log.WithField("component", "web")
	server, err := web.NewServer(fileCfg, web.WithOverrides(over), web.WithLogger(logger))
	if err != nil {
		return configError(err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if watchFlag {
		if path == "" {
			logger.Warn("--watch given but no config file found; nothing to watch")
		} else {
			logger.WithField("path", path).Info("watching config file")
			go func() {
				if err := server.Watch(ctx, path); err != nil {
					logger.WithError(err).Error("config watcher stopped")
				}
			}()
		}
	}

	return server.StartWithContext(ctx)
}
