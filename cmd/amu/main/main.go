package main

import (
	"os"

	"github.com/arthur-debert/amu/cmd/amu"
)

func main() {
	err := amu.NewRootCmd().Execute()
	os.Exit(amu.ExitCode(os.Stderr, err))
}
