package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var (
	unitPath  = "/etc/systemd/system/calc.service"
	systemctl = "systemctl"
)

func Install(o Options) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)
	o.Executable = exePath

	logrus.Infof("writing systemd unit to %s", unitPath)

	err = os.MkdirAll(filepath.Dir(unitPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(unitPath), err)
	}

	// warn if the file already exists
	_, err = os.Stat(unitPath)
	if err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	err = os.WriteFile(unitPath, []byte(RenderUnit(o)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	logrus.Infof("starting calc daemon")

	for _, args := range [][]string{
		{"daemon-reload"},
		{"enable", "--now", "calc.service"},
	} {
		if out, err := exec.Command(systemctl, args...).CombinedOutput(); err != nil {
			return fmt.Errorf("failed to run systemctl %v: %w: %s", args, err, out)
		}
	}

	return nil
}
