package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Stream state changes of the daemon calculator",
		GroupID: gBasic,
		Long: `Stream state changes of the daemon calculator.

Every key press made by any client is printed as it happens. Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Fail early with a useful error if the daemon is not there.
			if _, err := apiClient.GetState(); err != nil {
				return fmt.Errorf("failed to get state: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for ev := range apiClient.SubscribeEvents(ctx) {
				switch ev.Name {
				case events.StateChanged:
					e, err := events.DecodeAs[events.StateChangedEvent](ev)
					if err != nil {
						logrus.WithError(err).Warn("failed to decode state event")
						continue
					}
					cmd.Println(formatStateEvent(e))
				case events.SessionReset:
					e, err := events.DecodeAs[events.SessionResetEvent](ev)
					if err != nil {
						logrus.WithError(err).Warn("failed to decode reset event")
						continue
					}
					cmd.Println(color.HiBlackString("%s  session reset (%s)", eventTime(e.Ts), e.Reason))
				default:
					logrus.Debugf("ignoring event %q", ev.Name)
				}
			}

			if ctx.Err() == nil {
				return fmt.Errorf("event stream closed by daemon")
			}
			return nil
		},
	}
}

// formatStateEvent renders one state change as a single line.
func formatStateEvent(e events.StateChangedEvent) string {
	s := calc.State{
		Display:    e.Display,
		ClearLabel: calc.ClearLabel(e.ClearLabel),
		Error:      e.Error,
	}
	if err := s.ArmedOperator.UnmarshalText([]byte(e.ArmedOperator)); err != nil {
		logrus.Debugf("unknown operator %q in event", e.ArmedOperator)
	}

	line := fmt.Sprintf("%s  %-12s %s", eventTime(e.Ts), e.Button, renderDisplay(s))
	if s.ArmedOperator != calc.OpNone {
		line += "  " + operatorColor.Sprint(s.ArmedOperator.String())
	}
	return line
}

func eventTime(ts int64) string {
	return time.Unix(ts, 0).Format(time.TimeOnly)
}
