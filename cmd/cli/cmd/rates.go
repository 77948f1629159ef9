// Package cmd - rates and config commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"travel-reimbursement/core/reimbursement"
	"travel-reimbursement/internal/config"
)

// ratesCmd prints the effective rate schedule
func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Print the daily rate schedule in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := config.Get().RateSchedule()
			if err != nil {
				return err
			}
			processor, err := reimbursement.NewProcessor(schedule)
			if err != nil {
				return err
			}
			schedule = processor.Schedule()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "High cost travel day: $%s\n", schedule.HighTravel.StringFixed(2))
			fmt.Fprintf(w, "High cost full day:   $%s\n", schedule.HighFull.StringFixed(2))
			fmt.Fprintf(w, "Low cost travel day:  $%s\n", schedule.LowTravel.StringFixed(2))
			fmt.Fprintf(w, "Low cost full day:    $%s\n", schedule.LowFull.StringFixed(2))
			return nil
		},
	}
}

// configCmd manages configuration
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
