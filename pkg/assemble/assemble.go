// Package assemble builds a core.Sequence tree from raw ProForma text,
// handling the top-level separators (multi-chain "//", chimeric "+") and
// the trailing charge/ionic-species suffix before handing each chain off
// to pkg/parser.
package assemble

import (
	"strconv"
	"strings"

	"github.com/rswhitlock/proforma/pkg/core"
	"github.com/rswhitlock/proforma/pkg/parser"
)

// FromProforma parses a complete ProForma string, returning the assembled
// Sequence. A multi-chain input ("A//B") yields a Sequence with
// IsMultiChain true and Chains populated; a chimeric input ("A+B") yields a
// Sequence with Peptidoforms populated.
func FromProforma(s string) (*core.Sequence, error) {
	chainTexts := parser.SplitTopLevelString(s, "//")
	if len(chainTexts) == 1 {
		return buildPeptidoformGroup(chainTexts[0])
	}

	root := core.NewSequence()
	root.IsMultiChain = true
	for _, chainText := range chainTexts {
		chain, err := buildPeptidoformGroup(chainText)
		if err != nil {
			return nil, err
		}
		root.Chains = append(root.Chains, chain)
	}
	return root, nil
}

// buildPeptidoformGroup parses one '//'-delimited chain, which may itself
// be a '+'-delimited chimeric group of peptidoforms.
func buildPeptidoformGroup(s string) (*core.Sequence, error) {
	pieces := parser.SplitTopLevelString(s, "+")
	if len(pieces) == 1 {
		return buildPeptidoform(pieces[0])
	}

	root, err := buildPeptidoform(pieces[0])
	if err != nil {
		return nil, err
	}
	for _, piece := range pieces[1:] {
		seq, err := buildPeptidoform(piece)
		if err != nil {
			return nil, err
		}
		root.Peptidoforms = append(root.Peptidoforms, seq)
	}
	return root, nil
}

// buildPeptidoform strips and parses a trailing charge/ionic-species
// suffix, then delegates the remaining text to the parser.
func buildPeptidoform(s string) (*core.Sequence, error) {
	body, charge, ionic := splitChargeAndIonic(s)

	result, err := parser.Parse(body)
	if err != nil {
		return nil, err
	}

	seq := core.NewSequence()
	seq.Residues = result.Residues
	seq.Mods = result.Mods
	seq.GlobalMods = result.GlobalMods
	seq.SequenceAmbiguities = result.SequenceAmbiguities
	seq.Charge = charge
	seq.IonicSpecies = ionic

	for _, r := range seq.Residues {
		r.Mods = seq.Mods[r.Index]
	}

	return seq, nil
}

// splitChargeAndIonic strips a trailing "/N" or "/N[ionic]" suffix from s.
func splitChargeAndIonic(s string) (body string, charge *int, ionic string) {
	slash := parser.FindLastTopLevelSlash(s)
	if slash < 0 {
		return s, nil, ""
	}
	suffix := s[slash+1:]
	if suffix == "" {
		return s, nil, ""
	}

	numEnd := 0
	for numEnd < len(suffix) && (suffix[numEnd] == '+' || suffix[numEnd] == '-' || isDigit(suffix[numEnd])) {
		if numEnd > 0 && (suffix[numEnd] == '+' || suffix[numEnd] == '-') {
			break
		}
		numEnd++
	}
	if numEnd == 0 {
		return s, nil, ""
	}
	n, err := strconv.Atoi(suffix[:numEnd])
	if err != nil {
		return s, nil, ""
	}

	rest := suffix[numEnd:]
	if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]") {
		rest = rest[1 : len(rest)-1]
	}
	return s[:slash], &n, rest
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
