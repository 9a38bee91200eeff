// Package main is the entry point for the netsum capture checksum tool.
package main

import (
	"fmt"
	"os"

	"github.com/LineVall/linevall-frameworks-libs-net/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
