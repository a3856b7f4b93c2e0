package main

import (
	"os"

	"github.com/manav03panchal/habitual/cmd"
	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/runtime"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
		os.Exit(errors.ExitCode(err))
	}
}
