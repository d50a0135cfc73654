package cli

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/specialistvlad/codeshape/internal/app"
	"github.com/specialistvlad/codeshape/internal/config"
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

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// globalFlags maps persistent flag names to configuration keys.
var globalFlags = map[string]string{
	"log-level":     "log_level",
	"log-format":    "log_format",
	"query-dialect": "query_dialect",
}

// runtime is shared by the subcommands. The app is built once flags are
// parsed.
type runtime struct {
	configFile string
	app        *app.App
	errW       io.Writer
}

// NewRootCmd builds the command tree. Command output goes to outW, logs and
// diagnostics to errW.
func NewRootCmd(outW, errW io.Writer) *cobra.Command {
	rt := &runtime{errW: errW}
	defaults := config.Defaults()

	root := &cobra.Command{
		Use:   "codeshape",
		Short: "Reconcile TypeScript sources toward declarative definitions",
		Long: `codeshape compares a TypeScript file against one or more definition
files (JSON or YAML) and computes the minimal edits that make the source
satisfy them. Definitions describe nodes by kind and fields; policies pick
existing nodes by an identity query and add conditional rules.

Example:
  codeshape plan -s src/index.ts -d definitions/
  codeshape apply -s src/index.ts -d definitions/hello.yaml --write`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&rt.configFile, "config", "c", "", "Path to a config file (default: ./codeshape.yaml if present).")
	flags.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	flags.String("query-dialect", defaults.QueryDialect, "Language of identity, condition and index queries. Options: 'hcl', 'expr', 'jq'.")

	root.AddCommand(newPlanCmd(rt), newApplyCmd(rt))
	return root
}

// setup loads configuration from file, environment and flags, then builds
// the application.
func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader(rt.configFile)
	for flag, key := range globalFlags {
		if err := loader.Viper().BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind flag %s", flag)
		}
	}

	cfg, err := loader.Load(cmd.Context())
	if err != nil {
		return usageError(err)
	}

	a, err := app.NewApp(rt.errW, cfg)
	if err != nil {
		return usageError(err)
	}
	rt.app = a
	return nil
}

// sourceFlags are the inputs shared by plan and apply.
type sourceFlags struct {
	source     string
	definition string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "TypeScript file to reconcile. A missing file starts as an empty document.")
	cmd.Flags().StringVarP(&f.definition, "definition", "d", "", "Definition file, or a directory of .json/.yaml/.yml definitions.")
	cmd.PreRunE = f.check
}

// check rejects a run that leaves --source or --definition empty.
func (f *sourceFlags) check(*cobra.Command, []string) error {
	var missing []string
	if f.source == "" {
		missing = append(missing, `"source"`)
	}
	if f.definition == "" {
		missing = append(missing, `"definition"`)
	}
	if len(missing) == 0 {
		return nil
	}
	return usageError(errors.WithHint(
		errors.Newf("required flag(s) %s not set", strings.Join(missing, ", ")),
		"pass both --source and --definition"))
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

// Execute runs the command line and maps failures onto exit codes: 2 for
// usage and configuration problems, 1 for everything else.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCmd(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Message: err.Error()}
}
