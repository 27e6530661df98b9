// Package main is the entry point for the cleanread CLI.
package main

import (
	"os"

	"github.com/jmylchreest/cleanread/cmd/cleanread/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
