// Package cmd implements the proforma CLI's subcommands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "proforma",
	Short: "Parse, validate, and convert ProForma 2.0 proteoform notation",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(massCmd)
	rootCmd.AddCommand(fragmentsCmd)
	rootCmd.AddCommand(convertCmd)
}
