package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/calc/pkg/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the calc config file",
		GroupID: gAdvanced,
	}

	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigInitCommand(),
	)

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var fromDaemon bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as JSON, with defaults filled in.

By default the file at --config is read. With --daemon, the configuration the
running daemon uses is printed instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var c config.Config
			if fromDaemon {
				raw, err := apiClient.GetConfig()
				if err != nil {
					return err
				}
				c = config.NewFileFromConfig(raw, "")
			} else {
				f, err := config.NewFile(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				c = f
			}

			raw, err := config.NewRawFileConfigFromConfig(c)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(raw, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromDaemon, "daemon", false, "print the configuration of the running daemon")

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		precision    int
		allowNonRoot bool
		publish      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Long: `Write a config file to --config.

Unset flags keep the values already in the file, or the defaults when the file
does not exist. A running daemon picks up the change after SIGHUP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := config.NewFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("division-precision") {
				if precision < config.MinDivisionPrecision || precision > config.MaxDivisionPrecision {
					return fmt.Errorf("division precision must be between %d and %d, got %d",
						config.MinDivisionPrecision, config.MaxDivisionPrecision, precision)
				}
				f.SetDivisionPrecision(precision)
			} else {
				f.SetDivisionPrecision(f.DivisionPrecision())
			}
			if flags.Changed("allow-non-root-access") {
				f.SetAllowNonRootAccess(allowNonRoot)
			} else {
				f.SetAllowNonRootAccess(f.AllowNonRootAccess())
			}
			if flags.Changed("publish-events") {
				f.SetPublishEvents(publish)
			} else {
				f.SetPublishEvents(f.PublishEvents())
			}

			if err := f.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			logrus.WithFields(f.LogrusFields()).Infof("config written to %s", configPath)

			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&precision, "division-precision", 38, "fractional digits kept by a quotient")
	f.BoolVar(&allowNonRoot, "allow-non-root-access", false, "allow non-root users to access the daemon")
	f.BoolVar(&publish, "publish-events", true, "stream state changes on /events")

	return cmd
}
