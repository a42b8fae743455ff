package main

import (
	"os"

	"github.com/aiethics/selfcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
