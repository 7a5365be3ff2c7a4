package main

import (
	"os"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
