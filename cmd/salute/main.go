package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/flarebyte/salute/cmd/salute/root"
	"github.com/mattn/go-isatty"
	"go.uber.org/automaxprocs/maxprocs"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	// Tune GOMAXPROCS to the CPU quota without logging, stderr is reserved
	// for errors.
	undo, _ := maxprocs.Set()
	if err := root.Execute(os.Args[1:]); err != nil {
		// One short line on stderr, no usage or stack traces.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		c := color.New(color.FgRed)
		if isatty.IsTerminal(os.Stderr.Fd()) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		_, _ = c.Fprintln(os.Stderr, msg)
		code := 1
		if ec, ok := err.(exitCoder); ok {
			if n := ec.ExitCode(); n != 0 {
				code = n
			}
		}
		undo()
		os.Exit(code)
	}
	undo()
}
