package service

import (
	"strings"
)

// unitTemplate is the systemd unit for the calc daemon.
const unitTemplate = `[Unit]
Description=calc daemon
After=network.target

[Service]
Type=simple
ExecStart=/path/to/calc daemon --config=/path/to/config --daemon-socket=/path/to/socket
ExecReload=/bin/kill -HUP $MAINPID
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// Options are substituted into the unit.
type Options struct {
	Executable string
	ConfigPath string
	SocketPath string
	// AllowNonRoot adds --always-allow-non-root-access.
	AllowNonRoot bool
}

// RenderUnit returns the unit file text for o.
func RenderUnit(o Options) string {
	r := strings.NewReplacer(
		"/path/to/calc", o.Executable,
		"/path/to/config", o.ConfigPath,
		"/path/to/socket", o.SocketPath,
	)
	unit := r.Replace(unitTemplate)
	if o.AllowNonRoot {
		unit = strings.Replace(unit, "--daemon-socket=", "--always-allow-non-root-access --daemon-socket=", 1)
	}
	return unit
}
