package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", errInvalidChoice("--ui", value, "auto|on|off")
	}
}

// shouldUseTUI решает, показывать ли прогресс; stderr, потому что stdout
// занят нормализованным текстом
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func errInvalidChoice(flag, value, allowed string) error {
	return fmt.Errorf("invalid %s value %q (expected %s)", flag, value, allowed)
}
