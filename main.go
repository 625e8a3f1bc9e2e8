package main

import (
	"os"

	"github.com/signalnine/evalstats/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
