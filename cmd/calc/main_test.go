package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/calc/pkg/calc"
	"github.com/charlie0129/calc/pkg/config"
)

func init() {
	color.NoColor = true
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	divisionPrecision = 0
	showKeypad = false

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "calc.json")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseKeysArg(t *testing.T) {
	got, err := parseKeysArg([]string{"12+3", "="})
	require.NoError(t, err)
	assert.Equal(t, []calc.Button{calc.Digit1, calc.Digit2, calc.Add, calc.Digit3, calc.Equals}, got)

	got, err = parseKeysArg([]string{"5", "toggle-sign"})
	require.NoError(t, err)
	assert.Equal(t, []calc.Button{calc.Digit5, calc.ToggleSign}, got)

	_, err = parseKeysArg(nil)
	assert.Error(t, err)
	_, err = parseKeysArg([]string{"  "})
	assert.Error(t, err)
	_, err = parseKeysArg([]string{"2^3"})
	assert.ErrorIs(t, err, calc.ErrUnknownButton)
}

func TestParseIntArg(t *testing.T) {
	v, err := parseIntArg([]string{"12"}, "digits")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = parseIntArg([]string{"a"}, "digits")
	assert.ErrorContains(t, err, "invalid digits")
	_, err = parseIntArg([]string{"1", "2"}, "digits")
	assert.Error(t, err)
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "5+3+2="}, "10"},
		{[]string{"eval", "9-2=="}, "5"},
		{[]string{"eval", "1/4="}, "0.25"},
		{[]string{"eval", "1/3="}, "0." + strings.Repeat("3", 38)},
		{[]string{"eval", "7/0="}, calc.ErrorToken},
		{[]string{"eval", "--division-precision", "2", "2/3="}, "0.67"},
		{[]string{"eval", "5", "toggle-sign"}, "-5"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestEvalCommandUsesConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "calc.json")
	f, err := config.NewFile(p)
	require.NoError(t, err)
	f.SetDivisionPrecision(3)
	require.NoError(t, f.Save())

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", p, "eval", "2/3="})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "0.667", strings.TrimSpace(out.String()))
}

func TestEvalCommandRejectsBadInput(t *testing.T) {
	_, err := runCommand(t, "eval", "2^3")
	assert.ErrorIs(t, err, calc.ErrUnknownButton)

	_, err = runCommand(t, "eval", "--division-precision", "500", "1/3=")
	assert.ErrorContains(t, err, "division precision")
}

func TestEvalTrace(t *testing.T) {
	var out bytes.Buffer
	s := evalKeys(&out, calc.New(), []calc.Button{calc.Digit9, calc.Subtract, calc.Digit2, calc.Equals}, true)
	assert.Equal(t, "7", s.Display)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "subtract     9", lines[1])
	assert.Equal(t, "equals       7", lines[3])
}

func TestReplKey(t *testing.T) {
	tests := []struct {
		key    rune
		button calc.Button
		action replAction
	}{
		{'7', calc.Digit7, replPress},
		{'.', calc.Decimal, replPress},
		{'*', calc.Multiply, replPress},
		{'%', calc.Percent, replPress},
		{'\r', calc.Equals, replPress},
		{'=', calc.Equals, replPress},
		{27, calc.Clear, replPress},
		{127, calc.Clear, replPress},
		{'c', calc.Clear, replPress},
		{'n', calc.ToggleSign, replPress},
		{'q', 0, replQuit},
		{3, 0, replQuit},
		{'z', 0, replIgnore},
	}
	for _, tt := range tests {
		b, action := replKey(tt.key)
		assert.Equal(t, tt.action, action, "key %q", tt.key)
		if tt.action == replPress {
			assert.Equal(t, tt.button, b, "key %q", tt.key)
		}
	}
}

func TestRunRaw(t *testing.T) {
	e := calc.New()
	var out bytes.Buffer
	require.NoError(t, runRaw(strings.NewReader("12+3\rzq5"), crlfWriter{w: &out}, e))

	assert.Equal(t, "15", e.Display())
	assert.NotContains(t, strings.ReplaceAll(out.String(), "\r\n", ""), "\n")
}

func TestRunLines(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("2+2=\n\n*3=\nfoo\n")
	require.NoError(t, runLines(in, &out, calc.New()))

	assert.Equal(t, []string{"4", "12"}, strings.Split(strings.TrimSpace(out.String()), "\n")[:2])
	assert.Contains(t, out.String(), "error:")
}

func TestRenderKeypad(t *testing.T) {
	var out bytes.Buffer
	renderState(&out, calc.State{Display: "0", ClearLabel: calc.ClearAll})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "0", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], " AC"))
}
