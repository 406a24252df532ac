// Package main is the entry point for the psc CLI client.
package main

import "github.com/donaldgifford/price-scout/cmd/psc/cmd"

func main() {
	cmd.Execute()
}
