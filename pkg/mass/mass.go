// Package mass provides the thin neutral-mass calculator and fragment-pair
// constructor described as external collaborators in the data model: they
// consume a core.Sequence but do not themselves know how to parse or
// serialize ProForma text.
package mass

import (
	"fmt"

	"github.com/rswhitlock/proforma/pkg/core"
)

// MissingMassError reports that a modification attached to the sequence
// carries no resolvable numeric mass, so a neutral-mass calculation cannot
// proceed without external lookup (e.g. a Unimod accession table).
type MissingMassError struct {
	ResidueIndex int
	PrimaryValue string
}

func (e *MissingMassError) Error() string {
	return fmt.Sprintf("mass: no resolvable mass for modification %q at residue %d", e.PrimaryValue, e.ResidueIndex)
}

// Calculate returns the monoisotopic neutral mass of seq: the sum of every
// residue's intrinsic mass, every attached modification's mass, and a
// water molecule for the free termini. It returns a *MissingMassError if
// any modification lacks a resolvable mass.
func Calculate(seq *core.Sequence) (float64, error) {
	total := core.MassH*2 + core.MassO // water

	for _, r := range seq.Residues {
		m, ok := core.ResidueMass(r.Code)
		if !ok {
			return 0, fmt.Errorf("mass: unknown residue %q at index %d", r.Code, r.Index)
		}
		total += m
		for _, mod := range r.Mods {
			mm := mod.Mass()
			if mm == nil {
				return 0, &MissingMassError{ResidueIndex: r.Index, PrimaryValue: mod.PrimaryValue()}
			}
			total += *mm
		}
	}

	for key, mods := range seq.Mods {
		if key >= 0 {
			continue // residue-indexed mods are already folded into r.Mods above
		}
		for _, mod := range mods {
			mm := mod.Mass()
			if mm == nil {
				return 0, &MissingMassError{ResidueIndex: key, PrimaryValue: mod.PrimaryValue()}
			}
			total += *mm
		}
	}

	return total, nil
}

// MZ converts a neutral mass to an m/z value at the given charge, assuming
// protonation.
func MZ(neutralMass float64, charge int) float64 {
	if charge == 0 {
		return neutralMass
	}
	return (neutralMass + float64(charge)*core.MassProton) / float64(charge)
}

// FragmentPair is one matched (b, y) ion pair produced by cleaving seq
// after a given residue index. FragmentPairs computes b/y pairs only; a/x
// and c/z pairs are not produced.
type FragmentPair struct {
	CleavageIndex int
	NTermMass     float64
	CTermMass     float64
}

// FragmentPairs computes the b/y fragment ladder for seq: cleaving after
// every residue except the last, summing residue and modification masses
// on each side of the cut. Terminal modifications are folded into the
// fragment that owns that terminus.
func FragmentPairs(seq *core.Sequence) ([]FragmentPair, error) {
	n := len(seq.Residues)
	if n < 2 {
		return nil, fmt.Errorf("mass: sequence too short to fragment")
	}

	masses := make([]float64, n)
	for i, r := range seq.Residues {
		m, ok := core.ResidueMass(r.Code)
		if !ok {
			return nil, fmt.Errorf("mass: unknown residue %q at index %d", r.Code, r.Index)
		}
		for _, mod := range r.Mods {
			mm := mod.Mass()
			if mm == nil {
				return nil, &MissingMassError{ResidueIndex: r.Index, PrimaryValue: mod.PrimaryValue()}
			}
			m += *mm
		}
		masses[i] = m
	}

	var nTermExtra, cTermExtra float64
	for _, mod := range seq.NTermMods() {
		mm := mod.Mass()
		if mm == nil {
			return nil, &MissingMassError{ResidueIndex: core.KeyNTerm, PrimaryValue: mod.PrimaryValue()}
		}
		nTermExtra += *mm
	}
	for _, mod := range seq.CTermMods() {
		mm := mod.Mass()
		if mm == nil {
			return nil, &MissingMassError{ResidueIndex: core.KeyCTerm, PrimaryValue: mod.PrimaryValue()}
		}
		cTermExtra += *mm
	}

	pairs := make([]FragmentPair, 0, n-1)
	running := core.MassProton + nTermExtra
	for i := 0; i < n-1; i++ {
		running += masses[i]
		nMass := running
		cMass := 0.0
		for j := i + 1; j < n; j++ {
			cMass += masses[j]
		}
		cMass += core.MassProton + core.MassH*2 + core.MassO + cTermExtra
		pairs = append(pairs, FragmentPair{CleavageIndex: i, NTermMass: nMass, CTermMass: cMass})
	}
	return pairs, nil
}
