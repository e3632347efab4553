package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/userportal/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter userportal.yaml",
	Long: `Create userportal.yaml in the current directory with the default
timeout and listen address. Values given with --url and --token are
written too.

The token is stored in plain text; prefer USERPORTAL_TOKEN or a .env
file on shared machines.

Examples:
  userportal init
  userportal init --url http://localhost:8000 --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return writeStarterConfig(cmd, cwd)
}

func writeStarterConfig(cmd *cobra.Command, dir string) error {
	configFile := filepath.Join(dir, "userportal.yaml")
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return usageError(fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile))
		}
	}

	cfg := config.DefaultConfig()
	cfg.BaseURL = "http://localhost:8000"
	if urlFlag != "" {
		cfg.BaseURL = urlFlag
	}
	cfg.Token = tokenFlag
	if timeoutFlag != "" {
		cfg.Timeout = timeoutFlag
	}
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}

	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'userportal mock' and 'userportal serve' to try it out.\n")
	return nil
}
