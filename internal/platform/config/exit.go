package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Exit codes shared by gram commands.
const (
	// ExitFailure reports a runtime failure, including an unhealthy probe or
	// an incomplete translation report under -strict.
	ExitFailure = 1
	// ExitUsage reports invalid flags or environment, as flag.ExitOnError does.
	ExitUsage = 2
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf prints the message to stderr, prefixed with the command name, and
// exits with code.
func Exitf(code int, format string, args ...any) {
	fmt.Fprintf(stderr, "%s: %s\n", commandName(), fmt.Sprintf(format, args...))
	exit(code)
}

func commandName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "gram"
	}
	return filepath.Base(os.Args[0])
}
