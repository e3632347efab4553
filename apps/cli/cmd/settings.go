package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/abdul-hamid-achik/userportal/packages/core/config"
	"github.com/abdul-hamid-achik/userportal/packages/core/env"
)

// loadFileConfig reads --config, or the first config file in the working
// directory. path is empty when no file was found.
func loadFileConfig() (cfg *config.Config, path string, err error) {
	path = configFlag
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", configError(err)
		}
		var ok bool
		if path, ok = config.FindConfigFile(cwd); !ok {
			return config.DefaultConfig(), "", nil
		}
	}

	cfg, err = config.LoadConfig(path)
	if err != nil {
		return nil, "", configError(fmt.Errorf("loading config: %w", err))
	}
	return cfg, path, nil
}

// overrides collects the settings that win over the config file: the
// .env file and USERPORTAL_* variables, then flags the user passed.
func overrides(flags *pflag.FlagSet) (*config.Config, error) {
	settings, err := env.Load(envFileFlag)
	if err != nil {
		return nil, configError(fmt.Errorf("loading env file: %w", err))
	}

	cfg := &config.Config{
		BaseURL: settings[env.KeyURL],
		Token:   settings[env.KeyToken],
		Timeout: settings[env.KeyTimeout],
		Listen:  settings[env.KeyListen],
		Proxy:   proxyFlag,
	}
	if flags.Changed("url") {
		cfg.BaseURL = urlFlag
	}
	if flags.Changed("token") {
		cfg.Token = tokenFlag
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}
	if insecureFlag {
		cfg.ValidateSSL = config.BoolPtr(false)
	}
	if noColorFlag {
		cfg.NoColor = config.BoolPtr(true)
	}
	return cfg, nil
}

// resolveConfig layers file, environment and flags into one validated
// config.
func resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	fileCfg, _, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	over, err := overrides(flags)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig().Merge(fileCfg).Merge(over)
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}
