package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderUnit(t *testing.T) {
	unit := RenderUnit(Options{
		Executable: "/usr/local/bin/calc",
		ConfigPath: "/etc/calc.json",
		SocketPath: "/var/run/calc.sock",
	})
	assert.Contains(t, unit, "ExecStart=/usr/local/bin/calc daemon --config=/etc/calc.json --daemon-socket=/var/run/calc.sock\n")
	assert.NotContains(t, unit, "/path/to")
	assert.NotContains(t, unit, "non-root")

	unit = RenderUnit(Options{
		Executable:   "/opt/calc",
		ConfigPath:   "/tmp/c.json",
		SocketPath:   "/tmp/c.sock",
		AllowNonRoot: true,
	})
	assert.Contains(t, unit, "ExecStart=/opt/calc daemon --config=/tmp/c.json --always-allow-non-root-access --daemon-socket=/tmp/c.sock\n")
}
