package main

import (
	"os"

	"github.com/abhisek/fitplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
