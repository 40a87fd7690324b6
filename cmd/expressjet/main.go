// Command expressjet scaffolds Express + MongoDB backends. It exits with
// status 1 on error.
package main

import (
	"os"

	"github.com/expressjet/expressjet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
