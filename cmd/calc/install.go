package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/calc/pkg/config"
	"github.com/charlie0129/calc/pkg/utils/service"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install calc daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install calc daemon as a systemd service (system-wide).

This makes the daemon run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the calc daemon. If you want to allow non-root users to press keys on the shared calculator, use the --allow-non-root-access flag.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the calc daemon.")
			} else {
				logrus.Info("only root user is allowed to access the calc daemon.")
			}

			// Persist the config first so the service starts with it.
			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			err = service.Install(service.Options{
				ConfigPath: configPath,
				SocketPath: unixSocketPath,
			})
			if err != nil {
				// check if current user is root
				if os.Geteuid() != 0 {
					logrus.Errorf("you must run this command as root")
				}
				return fmt.Errorf("failed to install daemon: %v. Are you root?", err)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will use current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run ``calc install'' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access calc daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall calc daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall calc daemon from systemd (system-wide).

The config file is left in place. You must run this command as root.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			err := service.Uninstall()
			if err != nil {
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			logrus.Infof("successfully uninstalled calc daemon")

			return nil
		},
	}
}
