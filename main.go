package main

import (
	"os"

	"github.com/skycast-app/skycast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
