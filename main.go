package main

import (
	"os"

	"github.com/baiwusanyu-c/vinspect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
