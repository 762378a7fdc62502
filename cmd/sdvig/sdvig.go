package main

import (
	"os"

	"tableflip.dev/sdvig/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		// cobra has already printed the error.
		os.Exit(1)
	}
}
