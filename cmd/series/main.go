package main

import (
	"os"

	"github.com/dora-network/series-utils/cmd/series/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
