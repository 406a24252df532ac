// Package main is the entry point for price-scout.
package main

import (
	"os"

	"github.com/donaldgifford/price-scout/cmd/price-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
