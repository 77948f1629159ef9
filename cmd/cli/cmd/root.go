// Package cmd provides the CLI commands for travel-reimbursement.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"travel-reimbursement/internal/config"
	"travel-reimbursement/internal/logging"
)

// Version is the tool version, overridden at link time.
var Version = "0.1.0"

type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "travel-reimbursement",
		Short: "Calculate travel reimbursement for a set of projects",
		Long: `travel-reimbursement computes what an employee is owed for a set of
projects, each spanning a date range in a high or low cost city.

Overlapping and adjacent projects are merged, each calendar day is paid
once, and the first and last day of every trip are paid at the travel rate.

Examples:
  travel-reimbursement calculate projects.csv
  travel-reimbursement calculate --details projects.hcl
  travel-reimbursement calculate --format json projects.csv
  travel-reimbursement rates`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(ratesCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// Execute runs the CLI
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func initConfig(opts *rootOptions) error {
	path := opts.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	config.Set(cfg)

	// Initialize logging
	logCfg := cfg.Logging
	if opts.verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	logging.Debug("configuration loaded", zap.String("file", path))
	return nil
}

// versionCmd prints version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "travel-reimbursement version %s\n", Version)
		},
	}
}
