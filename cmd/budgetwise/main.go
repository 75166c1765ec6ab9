package main

import (
	"os"

	"github.com/budgetwise-dev/budgetwise/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
