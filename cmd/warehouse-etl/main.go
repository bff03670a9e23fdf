// Package main is the entry point for warehouse-etl.
package main

import (
	"fmt"
	"os"

	"github.com/sparkify/warehouse-etl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
