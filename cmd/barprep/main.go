package main

import (
	"os"

	"github.com/prbarprep/barprep-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
