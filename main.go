package main

import (
	"os"

	"github.com/avoronov/moviedbbackend/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
