package main

import (
	"os"

	"github.com/transakt-dev/transakt/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
