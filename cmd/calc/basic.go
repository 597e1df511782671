package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/calc/pkg/config"
	"github.com/charlie0129/calc/pkg/version"
)

var (
	// showKeypad draws the keypad under the display after a press.
	showKeypad = false
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := apiClient.GetVersion()
			if err != nil {
				logrus.Debugf("failed to get daemon version: %v", err)
				return
			}
			if daemonVersion != version.Version {
				logrus.Warnf("daemon is running version %s", daemonVersion)
			}
		},
	}
}

func NewPressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "press <keys...>",
		Short:   "Press keys on the daemon calculator",
		GroupID: gBasic,
		Long: `Press keys on the daemon calculator.

Keys are digits, glyphs (. + - × * / ÷ = % ± c) or names (add, toggle-sign,
equals, ...). Digits and glyphs can be run together, names must be separated
by spaces. All keys are applied in order, then the display is printed.

Examples:
  calc press 12+3=
  calc press 9 - 2 = =
  calc press 5 toggle-sign`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buttons, err := parseKeysArg(args)
			if err != nil {
				return err
			}

			s, err := apiClient.Press(buttons...)
			if err != nil {
				return fmt.Errorf("failed to press keys: %w", err)
			}

			if showKeypad {
				renderState(cmd.OutOrStdout(), *s)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDisplay(*s))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&showKeypad, "keypad", "k", false, "draw the keypad below the display")

	return cmd
}

func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Press the clear key",
		GroupID: gBasic,
		Long: `Press the clear key.

This resets the display to 0, drops the armed operator and leaves the error state.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := apiClient.Clear()
			if err != nil {
				return fmt.Errorf("failed to clear: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDisplay(*s))

			return nil
		},
	}
}

func NewPrecisionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "precision [digits]",
		Short:   "Set how many fractional digits a quotient keeps",
		GroupID: gAdvanced,
		Long: fmt.Sprintf(`Set how many fractional digits a quotient keeps.

This is a number from %d to %d. The value is saved to the daemon config file
and applies to the next division.`, config.MinDivisionPrecision, config.MaxDivisionPrecision),
		RunE: func(_ *cobra.Command, args []string) error {
			digits, err := parseIntArg(args, "digits")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetDivisionPrecision(digits)
			if err != nil {
				return fmt.Errorf("failed to set division precision: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set division precision to %d", digits)

			return nil
		},
	}
}
