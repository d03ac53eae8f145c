package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vk/geounits/internal/app"
	"github.com/vk/geounits/internal/hcl"
	"github.com/vk/geounits/internal/report"
	"github.com/vk/geounits/internal/units"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks a flag or argument problem, which exits with code 2.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// options holds the flag values shared by every command.
type options struct {
	logFormat   string
	logLevel    string
	output      string
	concurrency int
}

// NewRootCommand builds the geounits command tree. Reports go to outW, logs
// to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "geounits",
		Short: "Dimension-checked arithmetic for geotechnical worksheets",
		Long: `geounits evaluates HCL worksheets of measures and tensors. Every
product and quotient between quantities is checked against a registry of
operator rules, which worksheets may extend with their own rule blocks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVarP(&opts.output, "output", "o", "text", "Report format. Options: 'text', 'json' or 'yaml'.")

	root.AddCommand(
		newEvalCommand(opts, outW, errW),
		newUnitsCommand(opts, outW),
		newRulesCommand(opts, outW, errW),
	)
	return root
}

// Execute runs the command tree against args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// config validates the shared flags into an app.Config.
func (o *options) config(paths []string, errW io.Writer) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		Paths:       paths,
		LogFormat:   o.logFormat,
		LogLevel:    o.logLevel,
		LogOutput:   errW,
		Output:      report.Format(o.output),
		Concurrency: o.concurrency,
	})
	if err != nil {
		return nil, usageError(err)
	}
	slog.Debug("CLI parameter validation complete.", "paths", len(paths))
	return cfg, nil
}

func newEvalCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval PATH...",
		Short: "Evaluate worksheets and print every let",
		Args:  wrapArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(args, errW)
			if err != nil {
				return err
			}
			a, err := app.NewApp(outW, cfg, hcl.NewLoader())
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", app.DefaultConcurrency, "Number of worksheets evaluated at once.")
	return cmd
}

func newUnitsCommand(opts *options, outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "units [KIND]",
		Short: "List the unit table of one quantity, or of all of them",
		Args:  wrapArgs(cobra.MaximumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := report.ParseFormat(opts.output)
			if err != nil {
				return usageError(err)
			}
			qs := units.Quantities()
			if len(args) == 1 {
				q, err := units.QuantityByName(args[0])
				if err != nil {
					return usageError(err)
				}
				qs = []*units.Quantity{q}
			}
			return report.WriteUnits(outW, format, report.UnitRows(qs...))
		},
	}
}

func newRulesCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [PATH...]",
		Short: "List the core operator rules plus those declared by worksheets",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := opts.config(args, errW)
			if err != nil {
				return err
			}
			a, err := app.NewApp(outW, cfg, hcl.NewLoader())
			if err != nil {
				return err
			}
			return report.WriteRules(outW, cfg.Output, report.RuleRows(a.Registries().Rules()))
		},
	}
}

// wrapArgs turns positional-argument validation failures into usage errors.
func wrapArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(fmt.Errorf("%s: %w", cmd.CommandPath(), err))
		}
		return nil
	}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
