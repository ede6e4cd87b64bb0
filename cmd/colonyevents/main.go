package main

import (
	"fmt"
	"os"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/cli"
)

func main() {
	// Cobra handles parsing flags and executing the appropriate command's Run function.
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
