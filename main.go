package main

import (
	"os"

	"github.com/lovelace-project/lovelace-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
