package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/calc/pkg/calc"
)

type replAction int

const (
	replIgnore replAction = iota
	replPress
	replQuit
)

const (
	keyCtrlC     = 3
	keyCtrlD     = 4
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyEscape    = 27
	keyBackspace = 127
)

// replKey maps a single key read in raw mode to a button.
func replKey(r rune) (calc.Button, replAction) {
	switch r {
	case 'q', 'Q', keyCtrlC, keyCtrlD:
		return 0, replQuit
	case keyEnter, keyNewline:
		return calc.Equals, replPress
	case keyEscape, keyBackspace, '\b':
		return calc.Clear, replPress
	case 'n', 'N', '~', '_':
		return calc.ToggleSign, replPress
	}

	b, err := calc.ParseButton(string(r))
	if err != nil {
		return 0, replIgnore
	}
	return b, replPress
}

// crlfWriter turns "\n" into "\r\n", which a terminal in raw mode needs.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

const replHelp = "digits . + - * / = %  n: ±  c/Esc: clear  Enter: =  q: quit"

func drawREPL(w io.Writer, s calc.State) {
	// Clear the screen and move the cursor home.
	fmt.Fprint(w, "\033[H\033[2J")
	renderState(w, s)
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.HiBlackString(replHelp))
}

// runRaw reads one key at a time from in until a quit key or EOF.
func runRaw(in io.Reader, out io.Writer, e *calc.Engine) error {
	r := bufio.NewReader(in)
	s := e.State()
	drawREPL(out, s)

	for {
		key, _, err := r.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		b, action := replKey(key)
		switch action {
		case replQuit:
			return nil
		case replIgnore:
			continue
		}

		s = e.Handle(b)
		logrus.WithFields(logrus.Fields{
			"button":  b.String(),
			"display": s.Display,
		}).Trace("key pressed")
		drawREPL(out, s)
	}
}

// runLines is used when stdin is not a terminal: each line is a key
// sequence, and the display is printed after it.
func runLines(in io.Reader, out io.Writer, e *calc.Engine) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		buttons, err := calc.ParseSequence(sc.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if len(buttons) == 0 {
			continue
		}
		s := evalKeys(out, e, buttons, false)
		fmt.Fprintln(out, s.Display)
	}
	return sc.Err()
}

func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repl",
		Short:   "Interactive local calculator",
		GroupID: gLocal,
		Long: `Interactive local calculator.

Keys are read one at a time and the display and keypad are redrawn after every
press. This does not need the daemon.

When stdin is not a terminal, every input line is read as a key sequence and
the display is printed after it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newLocalEngine()
			if err != nil {
				return err
			}

			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return runLines(cmd.InOrStdin(), cmd.OutOrStdout(), e)
			}

			oldState, err := term.MakeRaw(fd)
			if err != nil {
				return fmt.Errorf("failed to put terminal into raw mode: %w", err)
			}
			defer func() {
				if err := term.Restore(fd, oldState); err != nil {
					logrus.Errorf("failed to restore terminal: %v", err)
				}
			}()

			return runRaw(os.Stdin, crlfWriter{w: cmd.OutOrStdout()}, e)
		},
	}

	cmd.Flags().IntVar(&divisionPrecision, "division-precision", 0, "fractional digits kept by a quotient (default from config file)")

	return cmd
}
