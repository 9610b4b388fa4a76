package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rswhitlock/proforma/pkg/assemble"
	"github.com/rswhitlock/proforma/pkg/mass"
)

var massCharge int

var massCmd = &cobra.Command{
	Use:   "mass [sequence]",
	Short: "Compute the neutral monoisotopic mass of a ProForma peptidoform",
	Args:  cobra.ExactArgs(1),
	RunE:  runMass,
}

func init() {
	massCmd.Flags().IntVar(&massCharge, "charge", 0, "report m/z at this charge instead of neutral mass")
}

func runMass(cmd *cobra.Command, args []string) error {
	seq, err := assemble.FromProforma(args[0])
	if err != nil {
		return fmt.Errorf("mass: %w", err)
	}
	neutral, err := mass.Calculate(seq)
	if err != nil {
		return fmt.Errorf("mass: %w", err)
	}
	if massCharge != 0 {
		fmt.Printf("%.6f\n", mass.MZ(neutral, massCharge))
		return nil
	}
	fmt.Printf("%.6f\n", neutral)
	return nil
}
