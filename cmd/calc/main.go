package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/calc/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/calc.sock"
	configPath     = "/etc/calc.json"
)

var (
	gBasic        = "Basic:"
	gLocal        = "Local:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"

	commandGroups = []string{
		gBasic,
		gLocal,
		gAdvanced,
		gInstallation,
	}
)

// apiClient talks to the daemon on --daemon-socket. It is set before any
// command runs.
var apiClient = client.NewClient(unixSocketPath)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: calc daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'calc daemon', or use 'calc eval' / 'calc repl' to calculate without a daemon.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with '--always-allow-non-root-access'")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "calc is a button-driven decimal calculator",
		Long: `calc is a button-driven decimal calculator.

Key presses are interpreted one at a time, like on a pocket calculator:
operators are applied left to right, "=" repeats the last operation, and
arithmetic is exact decimal arithmetic.

The calculator state can live in a background daemon (calc daemon), shared by
every client on the same socket, or in-process (calc eval, calc repl).`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}
			apiClient = client.NewClient(unixSocketPath)
			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "calc daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewPressCommand(),
		NewClearCommand(),
		NewStatusCommand(),
		NewWatchCommand(),
		NewEvalCommand(),
		NewREPLCommand(),
		NewPrecisionCommand(),
		NewConfigCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
