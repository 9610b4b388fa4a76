package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswhitlock/proforma/pkg/assemble"
	"github.com/rswhitlock/proforma/pkg/mass"
)

var fragmentsCmd = &cobra.Command{
	Use:   "fragments [sequence]",
	Short: "Print the b/y fragment mass ladder of a ProForma peptidoform",
	Args:  cobra.ExactArgs(1),
	RunE:  runFragments,
}

func runFragments(cmd *cobra.Command, args []string) error {
	seq, err := assemble.FromProforma(args[0])
	if err != nil {
		return fmt.Errorf("fragments: %w", err)
	}
	pairs, err := mass.FragmentPairs(seq)
	if err != nil {
		return fmt.Errorf("fragments: %w", err)
	}
	for _, p := range pairs {
		fmt.Printf("%d\tb=%.6f\ty=%.6f\n", p.CleavageIndex+1, p.NTermMass, p.CTermMass)
	}
	return nil
}
