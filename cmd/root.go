// Package cmd implements the CLI commands for ReportPipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/reportpipe/config"
)

type ctxKey string

const optionsKey ctxKey = "options"

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the root command. Configuration is loaded once
// before any subcommand runs and stored in the command context.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "reportpipe",
		Short: "ReportPipe — render trade-study reports into styled documents",
		Long: `ReportPipe parses the Markdown reports produced by the trade-study report
service (headings, lists, pipe tables, bold text and N/10 scores) and renders
them as PDF, HTML, JSON, Markdown or styled terminal output.

Usage:
  reportpipe render <file|url|->... [flags]
  reportpipe inspect <file|url|->
  reportpipe config init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if f := cmd.Flags().Lookup("output_dir"); f != nil {
				if err := v.BindPFlag("output_dir", f); err != nil {
					return fmt.Errorf("binding --output_dir: %w", err)
				}
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid config:\n%w", err)
			}
			opts := config.FromViper(v)
			cmd.SetContext(context.WithValue(cmd.Context(), optionsKey, opts))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getOptions(cmd *cobra.Command) config.Options {
	opts, ok := cmd.Context().Value(optionsKey).(config.Options)
	if !ok {
		fmt.Fprintln(os.Stderr, "internal error: options not loaded")
		os.Exit(1)
	}
	return opts
}
