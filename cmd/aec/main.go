package main

import (
	"os"

	"github.com/classroom-tools/aec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
