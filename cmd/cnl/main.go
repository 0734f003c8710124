package main

import (
	"os"

	"github.com/aster-cloud/cnl/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
