// Package main is the entry point for the vogon CLI binary.
package main

import (
	"os"

	cli "github.com/shubhiks/vogon-go/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
