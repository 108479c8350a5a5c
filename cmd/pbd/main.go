package main

import (
	"os"

	"github.com/cwbudde/go-pbd/cmd/pbd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
