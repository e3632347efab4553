package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/userportal/packages/db"
	"github.com/abdul-hamid-achik/userportal/packages/mock"
)

var (
	mockPortFlag    int
	mockDelayFlag   string
	mockDBFlag      string
	mockTokenFlag   string
	mockVerboseFlag bool
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Start a local stand-in for the user API",
	Long: `Start an HTTP server implementing the three user endpoints so the
form can be tried without a real backend:

  GET   /user?user_id=ID   200 user, 404 {"detail": "User not found"}
  PATCH /user              200 updated user, 404 when missing
  POST  /add_user          201 created user with a generated user_id

Users are kept in SQLite, in memory unless --db names a file. With
--token, PATCH and POST require "Authorization: Bearer <token>".

Examples:
  userportal mock
  userportal mock --port 9000 --delay 200ms
  userportal mock --db users.db --token abc123 --verbose`,
	Args: cobra.NoArgs,
	RunE: mockCommand,
}

func init() {
	mockCmd.Flags().IntVarP(&mockPortFlag, "port", "p", 8000, "Port to run the mock server on")
	mockCmd.Flags().StringVarP(&mockDelayFlag, "delay", "d", "0", "Delay to add to all responses (e.g., 100ms, 1s)")
	mockCmd.Flags().StringVar(&mockDBFlag, "db", getEnvString("USERPORTAL_MOCK_DB", ""), "SQLite database file (default: in memory) (env: USERPORTAL_MOCK_DB)")
	mockCmd.Flags().StringVar(&mockTokenFlag, "require-token", getEnvString("USERPORTAL_MOCK_TOKEN", ""), "Bearer token required for PATCH and POST (env: USERPORTAL_MOCK_TOKEN)")
	mockCmd.Flags().BoolVar(&mockVerboseFlag, "log-requests", false, "Log every request")
}

func mockCommand(cmd *cobra.Command, args []string) error {
	var delay time.Duration
	if mockDelayFlag != "0" {
		var err error
		delay, err = time.ParseDuration(mockDelayFlag)
		if err != nil {
			return usageError(fmt.Errorf("invalid delay value %q: %w", mockDelayFlag, err))
		}
	}

	store, err := db.Open(mockDBFlag)
	if err != nil {
		return configError(fmt.Errorf("opening user store: %w", err))
	}
	defer store.Close()

	server := mock.NewServer(store,
		mock.WithPort(mockPortFlag),
		mock.WithDelay(delay),
		mock.WithVerbose(mockVerboseFlag || verboseFlag),
		mock.WithToken(mockTokenFlag),
		mock.WithLogger(log.WithField("component", "mock")),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d routes, users in %s\n", len(server.GetRoutes()), store.DataSource())

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down mock server...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return server.StartWithContext(ctx)
}
