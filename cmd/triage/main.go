package main

import (
	"os"

	"triage-cli/internal/cli"
	"triage-cli/internal/logging"
)

func main() {
	logging.Setup()
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
