// Package main provides the CLI entry point for configgen.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/SpaceTeam/lamarr-configgen/internal/config"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// cliOptions holds flag values for one invocation.
type cliOptions struct {
	configPath string
	format     string
	indent     int
	logLevel   string
	sheets     []string
	parallel   bool
	stdout     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(rootCmd, err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	rootCmd := &cobra.Command{
		Use:   "configgen [config_sheet.xlsx] [config_export.json]",
		Short: "Convert a simulation parameter sheet into a config document",
		Long: `configgen converts a parameter workbook (one table per sheet with the columns
Category, Name, Value, Unit and Comment) into the JSON config document read by
the flight simulation. Values are converted into SI base units on the way.

(!) Warning: a file at the export path will be overwritten.`,
		Args:          validateArgs(opts),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML settings file (default: $"+config.EnvConfigPath+")")
	flags.StringVarP(&opts.format, "format", "f", string(output.FormatJSON), "Output format: json or yaml")
	flags.IntVar(&opts.indent, "indent", output.DefaultIndent, "Spaces per indentation level (0 for compact JSON)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default: $"+config.EnvLogLevel+" or warn)")
	flags.StringArrayVarP(&opts.sheets, "sheet", "s", nil, "Convert only this sheet (repeatable)")
	flags.BoolVar(&opts.parallel, "parallel", false, "Convert sheets concurrently")
	flags.BoolVar(&opts.stdout, "stdout", false, "Print the document instead of writing an export file")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &configgen.ArgumentError{Msg: err.Error()}
	})
	return rootCmd
}

// validateArgs requires the import and export paths, or only the import
// path when printing to stdout.
func validateArgs(opts *cliOptions) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		want := 2
		if opts.stdout {
			want = 1
		}
		if len(args) != want {
			return &configgen.ArgumentError{Msg: fmt.Sprintf("expected %d arguments, got %d", want, len(args))}
		}
		return nil
	}
}

func run(cmd *cobra.Command, opts *cliOptions, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(config.Resolve(opts.configPath, config.EnvConfigPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := config.Resolve(opts.logLevel, config.EnvLogLevel)
	if level == "" {
		level = cfg.Log.Level
	}
	if err := setupLogging(cmd.ErrOrStderr(), level); err != nil {
		return &configgen.ArgumentError{Msg: err.Error()}
	}

	formatName := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		formatName = opts.format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return &configgen.ArgumentError{Msg: err.Error()}
	}

	indent := cfg.Output.Indent
	if cmd.Flags().Changed("indent") {
		indent = opts.indent
	}
	if indent < 0 {
		return &configgen.ArgumentError{Msg: fmt.Sprintf("invalid indent %d", indent)}
	}

	table, err := cfg.UnitTable()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	convertOpts := configgen.Options{
		Columns:  cfg.ColumnTitles(),
		Units:    table,
		Sheets:   opts.sheets,
		Parallel: opts.parallel,
	}

	doc, err := configgen.Generate(cmd.Context(), args[0], convertOpts)
	if err != nil {
		return err
	}

	if opts.stdout {
		data, err := output.Encode(doc, format, indent)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := configgen.Export(doc, args[1], format, indent); err != nil {
		return err
	}
	log.Info().Str("import", args[0]).Str("export", args[1]).Int("sheets", doc.Len()).Msg("config generated")
	return nil
}

// errorMessage renders err as the single line shown to the user.
func errorMessage(cmd *cobra.Command, err error) string {
	var argErr *configgen.ArgumentError
	if errors.As(err, &argErr) {
		return fmt.Sprintf("%v\nThis command must be executed with arguments, try '%s -h' for help.", err, cmd.CommandPath())
	}
	return fmt.Sprintf("Error: %v", err)
}
