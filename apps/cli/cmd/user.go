package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/userportal/packages/core/config"
	uphttp "github.com/abdul-hamid-achik/userportal/packages/http"
	"github.com/abdul-hamid-achik/userportal/packages/output"
	"github.com/abdul-hamid-achik/userportal/packages/portal"
)

// Formatter interface for all output formatters
type Formatter interface {
	FormatView(v *output.View)
	FormatError(err error)
	FormatHeader(version string)
}

var (
	outputFlag string
	fieldFlag  string
)

// userCommands builds one subcommand per action, each with a flag per
// form field (user_id becomes --user-id).
func userCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, spec := range portal.Specs() {
		cmds = append(cmds, newUserCommand(spec))
	}
	return cmds
}

func newUserCommand(spec portal.Spec) *cobra.Command {
	values := make(map[string]*string, len(spec.Fields))

	c := &cobra.Command{
		Use:   string(spec.Action),
		Short: fmt.Sprintf("%s (%s)", spec.Button, spec.Title()),
		Long:  userLong(spec),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}

			fields := make(portal.Values, len(values))
			for name, v := range values {
				fields[name] = *v
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runAction(ctx, cmd.OutOrStdout(), cfg, spec.Action, fields, outputFlag, fieldFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("USERPORTAL_OUTPUT", "console"), "Output format: console, json (env: USERPORTAL_OUTPUT)")
	c.Flags().StringVar(&fieldFlag, "field", "", "Print only this field of a JSON response (gjson path, e.g. name)")
	for _, f := range spec.Fields {
		values[f] = c.Flags().String(flagName(f), "", fmt.Sprintf("Value for %s", f))
	}
	return c
}

func userLong(spec portal.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Send %s against the configured base URL.\n", spec.Title())
	if spec.Note != "" {
		fmt.Fprintf(&b, "\n%s\n", spec.Note)
	}
	fmt.Fprintf(&b, "\nExamples:\n  userportal %s --url http://localhost:8000", spec.Action)
	for _, f := range spec.Fields {
		fmt.Fprintf(&b, " --%s ...", flagName(f))
	}
	return b.String()
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func newFormatter(w io.Writer, format string, cfg *config.Config) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "", "console":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(verboseFlag),
			output.WithNoColor(cfg.GetNoColor()),
		), nil
	default:
		return nil, usageError(fmt.Errorf("unknown output format %q (use console or json)", format))
	}
}

// runAction sends one request and writes the outcome to w. Any HTTP status
// is success; no response at all is a network error.
func runAction(ctx context.Context, w io.Writer, cfg *config.Config, action portal.Action, values portal.Values, format, field string) error {
	formatter, err := newFormatter(w, format, cfg)
	if err != nil {
		return err
	}

	timeout, err := cfg.GetTimeout()
	if err != nil {
		return configError(err)
	}
	client := uphttp.NewClient(
		uphttp.WithTimeout(timeout),
		uphttp.WithValidateSSL(cfg.GetValidateSSL()),
		uphttp.WithProxy(cfg.Proxy),
		uphttp.WithDefaultHeader("User-Agent", "userportal/"+version),
	)

	target := portal.Target{BaseURL: cfg.BaseURL, Token: cfg.Token}
	res := portal.NewDispatcher(client).Submit(ctx, action, target, values)
	view := output.Render(res)

	if field != "" {
		value, err := output.Select(view, field)
		if err != nil {
			if view.Failed() {
				return networkError(err)
			}
			return err
		}
		fmt.Fprintln(w, value)
		return nil
	}

	formatter.FormatView(view)
	if view.Failed() {
		return shownNetworkError(res.Err)
	}
	return nil
}
