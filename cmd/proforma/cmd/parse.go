package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswhitlock/proforma/pkg/assemble"
	"github.com/rswhitlock/proforma/pkg/serialize"
)

var parseCmd = &cobra.Command{
	Use:   "parse [sequence]",
	Short: "Parse a ProForma string and print its canonical serialization",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	seq, err := assemble.FromProforma(args[0])
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	fmt.Println(serialize.Serialize(seq))
	return nil
}
