// Package main is the entry point for the rc_admin maintenance CLI.
package main

import (
	"os"

	"github.com/SscSPs/revenue_cycle_app/cmd/rc_admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
