package main

import (
	"os"

	"github.com/jatin/qlock/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
