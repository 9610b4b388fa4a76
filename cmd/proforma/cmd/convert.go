package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rswhitlock/proforma/pkg/core"
	"github.com/rswhitlock/proforma/pkg/filter"
	"github.com/rswhitlock/proforma/pkg/reader/proforma"
	"github.com/rswhitlock/proforma/pkg/serialize"
	sqlitewriter "github.com/rswhitlock/proforma/pkg/writer/sqlite"
)

var (
	convertIn             string
	convertOut            string
	convertMinCharge      int
	convertMaxCharge      int
	convertRequireSources []string
	convertExcludeKinds   []string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Read a file of ProForma strings and write matching peptidoforms to SQLite",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "input file of newline-separated ProForma strings")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output SQLite database path")
	convertCmd.Flags().IntVar(&convertMinCharge, "min-charge", 0, "drop peptidoforms below this charge")
	convertCmd.Flags().IntVar(&convertMaxCharge, "max-charge", 0, "drop peptidoforms above this charge")
	convertCmd.Flags().StringSliceVar(&convertRequireSources, "require-source", nil, "keep only peptidoforms carrying a modification from one of these sources")
	convertCmd.Flags().StringSliceVar(&convertExcludeKinds, "exclude-kind", nil, "drop peptidoforms carrying a modification of one of these kinds")
	convertCmd.MarkFlagRequired("in")
	convertCmd.MarkFlagRequired("out")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, err := os.Open(convertIn)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer in.Close()

	w, err := sqlitewriter.NewWriter(convertOut)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer w.Close()

	cfg := filter.Config{
		MinCharge:      convertMinCharge,
		MaxCharge:      convertMaxCharge,
		RequireSources: convertRequireSources,
		ExcludeKinds:   parseKindNames(convertExcludeKinds),
	}

	rd := proforma.NewReader(in)
	count := 0
	for rd.Next() {
		seq := rd.Sequence()
		if !filter.Keep(seq, cfg) {
			continue
		}
		if err := w.WriteSequence(seq, serialize.Serialize(seq)); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		count++
	}
	if err := rd.Err(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	fmt.Fprintf(os.Stderr, "wrote %d peptidoforms to %s\n", count, convertOut)
	return nil
}

func parseKindNames(names []string) []core.ModKind {
	var out []core.ModKind
	for _, name := range names {
		switch name {
		case "static":
			out = append(out, core.ModStatic)
		case "variable":
			out = append(out, core.ModVariable)
		case "terminal":
			out = append(out, core.ModTerminal)
		case "ambiguous":
			out = append(out, core.ModAmbiguous)
		case "crosslink":
			out = append(out, core.ModCrosslink)
		case "branch":
			out = append(out, core.ModBranch)
		case "gap":
			out = append(out, core.ModGap)
		case "labile":
			out = append(out, core.ModLabile)
		case "unknown_position":
			out = append(out, core.ModUnknownPosition)
		case "global":
			out = append(out, core.ModGlobal)
		}
	}
	return out
}
