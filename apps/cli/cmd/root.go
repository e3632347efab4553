package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	urlFlag      string
	tokenFlag    string
	timeoutFlag  string
	configFlag   string
	envFileFlag  string
	proxyFlag    string
	insecureFlag bool
	noColorFlag  bool
	verboseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "userportal",
	Short: "Form UI for a user management API",
	Long: `userportal is a small front end for a user management service.
It fetches, updates and creates users through three HTTP calls
(GET /user, PATCH /user, POST /add_user) against a configurable
base URL with an optional bearer token.

Start the browser form with 'userportal serve', or issue the same
calls from a terminal with 'userportal get|patch|add'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetHandler(cli.New(cmd.ErrOrStderr()))
		if verboseFlag {
			log.SetLevel(log.DebugLevel)
			log.Debugf("userportal version %s", version)
		}
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if !errors.As(err, &ee) || !ee.shown {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&urlFlag, "url", "", "Base URL of the user API (env: USERPORTAL_URL)")
	pf.StringVar(&tokenFlag, "token", "", "Bearer token for PATCH and POST (env: USERPORTAL_TOKEN)")
	pf.StringVar(&timeoutFlag, "timeout", "", "Request timeout, e.g. 10s (env: USERPORTAL_TIMEOUT)")
	pf.StringVarP(&configFlag, "config", "c", getEnvString("USERPORTAL_CONFIG", ""), "Path to config file (env: USERPORTAL_CONFIG)")
	pf.StringVar(&envFileFlag, "env-file", getEnvString("USERPORTAL_ENV_FILE", ""), "Path to .env file with USERPORTAL_* settings (env: USERPORTAL_ENV_FILE)")
	pf.StringVar(&proxyFlag, "proxy", getEnvString("USERPORTAL_PROXY", ""), "Proxy URL for outbound requests (env: USERPORTAL_PROXY)")
	pf.BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("USERPORTAL_INSECURE", false), "Disable SSL certificate validation (env: USERPORTAL_INSECURE)")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("USERPORTAL_NO_COLOR", false), "Disable colored output (env: USERPORTAL_NO_COLOR)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	for _, c := range userCommands() {
		rootCmd.AddCommand(c)
	}
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}
