package main

import (
	"fmt"
	"os"

	"remindo/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "remindo: %v\n", err)
		os.Exit(1)
	}
}
