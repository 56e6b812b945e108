package main

import (
	"os"

	"github.com/omirandette/rule-engine/cmd/ruleengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
