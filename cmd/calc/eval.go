package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
)

var (
	// divisionPrecision overrides the config file for local commands. 0 means unset.
	divisionPrecision = 0
)

// newLocalEngine builds an engine configured from --config, or from
// --division-precision when it is given.
func newLocalEngine() (*calc.Engine, error) {
	precision := divisionPrecision
	if precision == 0 {
		c, err := config.NewFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		precision = c.DivisionPrecision()
	}
	if precision < config.MinDivisionPrecision || precision > config.MaxDivisionPrecision {
		return nil, fmt.Errorf("division precision must be between %d and %d, got %d",
			config.MinDivisionPrecision, config.MaxDivisionPrecision, precision)
	}

	logrus.WithField("divisionPrecision", precision).Debug("using local engine")

	return calc.New(calc.WithDivisionPrecision(int32(precision))), nil
}

// evalKeys runs buttons through e and writes the result to w. With trace
// set, the display after every key is written too.
func evalKeys(w io.Writer, e *calc.Engine, buttons []calc.Button, trace bool) calc.State {
	var s calc.State
	for _, b := range buttons {
		s = e.Handle(b)
		if trace {
			fmt.Fprintf(w, "%-12s %s\n", b, s.Display)
		}
	}
	return s
}

func NewEvalCommand() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:     "eval <keys...>",
		Short:   "Run keys through a local calculator",
		GroupID: gLocal,
		Long: `Run keys through a local calculator and print the display.

This does not need the daemon. Every invocation starts from a cleared calculator.

Examples:
  calc eval 1/3=
  calc eval 2 × 3 % =
  calc eval --trace 9-2==`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buttons, err := parseKeysArg(args)
			if err != nil {
				return err
			}

			e, err := newLocalEngine()
			if err != nil {
				return err
			}

			s := evalKeys(cmd.OutOrStdout(), e, buttons, trace)
			if showKeypad {
				renderState(cmd.OutOrStdout(), s)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDisplay(s))

			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&trace, "trace", false, "print the display after every key")
	f.BoolVarP(&showKeypad, "keypad", "k", false, "draw the keypad below the display")
	f.IntVar(&divisionPrecision, "division-precision", 0, "fractional digits kept by a quotient (default from config file)")

	return cmd
}
