package main

import (
	"os"

	"github.com/bundlecheck/bundle-health-checker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
