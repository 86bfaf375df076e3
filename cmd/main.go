package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"ippvm/internal/runner"
	"ippvm/pkg/interpreter"
)

// Main entry point for the ippvm interpreter.
func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and returns the process exit code
func execute(args []string) int {
	a := newApp()
	cmd := a.command()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		code := runner.ExitCode(err)

		var rerr *interpreter.Error
		if errors.As(err, &rerr) {
			log.Error(rerr.Msg, "code", code, "kind", rerr.Kind, "ip", rerr.IP, "op", rerr.Op, "order", rerr.Order)
		} else {
			log.Error("Execution failed", "code", code, "error", err)
		}
		return code
	}

	return a.code
}
