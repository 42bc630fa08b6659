package main

import (
	"os"

	"pinboard/pinboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
