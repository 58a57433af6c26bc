package main

import (
	"os"

	"github.com/okian/deckgen/cmd/deckgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
