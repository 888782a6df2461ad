package main

import (
	"os"

	"github.com/ppiankov/secdigest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
