package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
)

type statusData struct {
	state  *calc.State
	config *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	s, err := apiClient.GetState()
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		state:  s,
		config: conf,
	}, nil
}

// statusJSON is the machine-readable form printed by "status --json".
type statusJSON struct {
	State  *calc.State           `json:"state"`
	Config *config.RawFileConfig `json:"config"`
}

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current state of the daemon calculator",
		Long:    `Get the display, clear label, armed operator and configuration of the daemon calculator.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			if asJSON {
				b, err := json.MarshalIndent(statusJSON{State: data.state, Config: data.config}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal status: %w", err)
				}
				cmd.Println(string(b))
				return nil
			}

			s := data.state
			cmd.Println(bold("Calculator:"))
			cmd.Printf("  Display: %s\n", renderDisplay(*s))
			cmd.Printf("  Clear key: %s\n", bold("%s", s.ClearLabel))
			if s.ArmedOperator == calc.OpNone {
				cmd.Printf("  Armed operator: %s\n", "none")
			} else {
				cmd.Printf("  Armed operator: %s\n", bold("%s", s.ArmedOperator))
			}
			cmd.Printf("  Error: %s\n", bool2Text(s.Error))

			cmd.Println()

			conf := config.NewFileFromConfig(data.config, "")
			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Division precision: %s\n", bold("%d fractional digits", conf.DivisionPrecision()))
			cmd.Printf("  Publish events: %s\n", bool2Text(conf.PublishEvents()))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")

	return cmd
}
