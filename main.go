package main

import (
	"os"

	"github.com/Miyukiichan/lofi-buddy/internal/cli"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
