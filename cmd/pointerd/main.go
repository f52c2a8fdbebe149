// Package main starts the pointerd server.
package main

import (
	"fmt"
	"os"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// main is the entrypoint for the pointerd server.
func main() {
	if err := newRootCmd(version, commit, buildDate).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
