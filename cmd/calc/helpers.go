package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/charlie0129/calc/pkg/calc"
)

// parseKeysArg turns command line arguments into buttons. Arguments are
// joined with spaces, so "12+3=" and "12 + 3 =" are the same.
func parseKeysArg(args []string) ([]calc.Button, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no keys given")
	}

	buttons, err := calc.ParseSequence(strings.Join(args, " "))
	if err != nil {
		return nil, fmt.Errorf("invalid keys: %w", err)
	}
	if len(buttons) == 0 {
		return nil, fmt.Errorf("no keys given")
	}

	return buttons, nil
}

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
