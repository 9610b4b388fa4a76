package parser

import (
	"testing"

	"github.com/rswhitlock/proforma/pkg/core"
)

func TestParseSimpleSiteMod(t *testing.T) {
	res, err := Parse("EM[Oxidation]EVEES")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.Residues) != 7 {
		t.Fatalf("got %d residues, want 7", len(res.Residues))
	}
	mods := res.Mods[1]
	if len(mods) != 1 || mods[0].Kind != core.ModStatic {
		t.Fatalf("expected one static mod at index 1, got %+v", mods)
	}
	if mods[0].PrimaryValue() != "Oxidation" {
		t.Fatalf("PrimaryValue = %q, want Oxidation", mods[0].PrimaryValue())
	}
}

func TestParseNTermAndCTerm(t *testing.T) {
	res, err := Parse("[Acetyl]-PEPTIDE-[Amidated]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.Mods[core.KeyNTerm]) != 1 {
		t.Fatalf("expected one N-term mod, got %d", len(res.Mods[core.KeyNTerm]))
	}
	if len(res.Mods[core.KeyCTerm]) != 1 {
		t.Fatalf("expected one C-term mod, got %d", len(res.Mods[core.KeyCTerm]))
	}
	if len(res.Residues) != 7 {
		t.Fatalf("got %d residues, want 7", len(res.Residues))
	}
}

func TestParseBracketedFixedGlobalModification(t *testing.T) {
	res, err := Parse("<[Unimod:4]@C>PEPCTIDE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.GlobalMods) != 1 {
		t.Fatalf("expected one global mod, got %d", len(res.GlobalMods))
	}
	g := res.GlobalMods[0]
	if g.Type != core.GlobalFixed {
		t.Fatalf("Type = %v, want GlobalFixed", g.Type)
	}
	if !g.BodyBracketed {
		t.Fatal("expected BodyBracketed to be true")
	}
	if g.Mod.Value.Source != "Unimod" {
		t.Fatalf("expected the bracket-stripped body to parse with source Unimod, got %+v", g.Mod.Value)
	}
	if len(g.TargetResidues) != 1 || g.TargetResidues[0] != "C" {
		t.Fatalf("TargetResidues = %v, want [C]", g.TargetResidues)
	}
}

func TestParseUnbracketedFixedGlobalModification(t *testing.T) {
	res, err := Parse("<Carbamidomethyl@C>PEPCTIDE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	g := res.GlobalMods[0]
	if g.BodyBracketed {
		t.Fatal("expected BodyBracketed to be false")
	}
	if g.Mod.PrimaryValue() != "Carbamidomethyl" {
		t.Fatalf("PrimaryValue() = %q, want Carbamidomethyl", g.Mod.PrimaryValue())
	}
}

func TestParseLabileAndGlobal(t *testing.T) {
	res, err := Parse("<13C>{Glycan:Hex}EMEVEES")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.GlobalMods) != 1 || res.GlobalMods[0].IsotopeLabel != "13C" {
		t.Fatalf("expected isotope label 13C, got %+v", res.GlobalMods)
	}
	if len(res.Mods[core.KeyLabile]) != 1 {
		t.Fatalf("expected one labile mod, got %d", len(res.Mods[core.KeyLabile]))
	}
}

func TestParseUnknownPositionSingle(t *testing.T) {
	res, err := Parse("[Phospho]?PEPTIDE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.Mods[core.KeyUnknownPosition]) != 1 {
		t.Fatalf("expected one unknown-position mod, got %d", len(res.Mods[core.KeyUnknownPosition]))
	}
}

func TestParseUnknownPositionCount(t *testing.T) {
	res, err := Parse("[Phospho]^2?PEPTIDE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.Mods[core.KeyUnknownPosition]) != 2 {
		t.Fatalf("expected two unknown-position mods, got %d", len(res.Mods[core.KeyUnknownPosition]))
	}
}

func TestParseAmbiguousSiteGroup(t *testing.T) {
	res, err := Parse("PEPT{Phospho#g1}IDE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	mods := res.Mods[3]
	if len(mods) != 1 || mods[0].Kind != core.ModAmbiguous {
		t.Fatalf("expected one ambiguous mod at index 3, got %+v", mods)
	}
}

func TestParseUnclosedBracketError(t *testing.T) {
	if _, err := Parse("PEPTIDE[Phospho"); err == nil {
		t.Fatal("expected an unclosed-bracket error")
	}
}

func TestParseRangeModificationSharesAcrossResidues(t *testing.T) {
	res, err := Parse("PRT(ESFRMS)[+19.0523]ISK")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(res.Residues) != 12 {
		t.Fatalf("got %d residues, want 12", len(res.Residues))
	}

	var shared *core.Modification
	for idx := 3; idx <= 8; idx++ {
		mods := res.Mods[idx]
		if len(mods) != 1 {
			t.Fatalf("residue %d: got %d mods, want 1", idx, len(mods))
		}
		if shared == nil {
			shared = mods[0]
		} else if mods[0] != shared {
			t.Fatalf("residue %d carries a different Modification instance than residue 3", idx)
		}
	}
	if shared.Kind != core.ModVariable {
		t.Fatalf("Kind = %v, want ModVariable", shared.Kind)
	}
	if shared.RangeStart != 3 || shared.RangeEnd != 8 {
		t.Fatalf("RangeStart/RangeEnd = %d/%d, want 3/8", shared.RangeStart, shared.RangeEnd)
	}
	if len(res.Mods[2]) != 0 || len(res.Mods[9]) != 0 {
		t.Fatal("range modification leaked onto a residue outside the range")
	}
}

func TestParseCrosslinkKind(t *testing.T) {
	res, err := Parse("SEK[XLMOD:02001#XL1]UENCE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	mods := res.Mods[2]
	if len(mods) != 1 || mods[0].Kind != core.ModCrosslink {
		t.Fatalf("expected one crosslink mod at index 2, got %+v", mods)
	}
	if mods[0].Value.CrosslinkID() != "XL1" {
		t.Fatalf("CrosslinkID() = %q, want XL1", mods[0].Value.CrosslinkID())
	}
}

func TestParseCrosslinkReferenceKind(t *testing.T) {
	res, err := Parse("EMEVTK[#XL1]SESPLK")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	mods := res.Mods[5]
	if len(mods) != 1 || mods[0].Kind != core.ModCrosslink {
		t.Fatalf("expected one crosslink mod at index 5, got %+v", mods)
	}
	if !mods[0].Value.IsCrosslinkRef() {
		t.Fatal("expected a bodiless crosslink reference")
	}
}

func TestParseMultipleNTermMods(t *testing.T) {
	res, err := Parse("[Acetyl][Formyl]-PEPTIDE")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	nterm := res.Mods[core.KeyNTerm]
	if len(nterm) != 2 {
		t.Fatalf("expected two N-term mods, got %d", len(nterm))
	}
	if nterm[0].PrimaryValue() != "Acetyl" || nterm[1].PrimaryValue() != "Formyl" {
		t.Fatalf("N-term mods = %+v, want [Acetyl Formyl]", nterm)
	}
	if len(res.Residues) != 7 {
		t.Fatalf("got %d residues, want 7", len(res.Residues))
	}
	if res.Residues[0].Code != "P" {
		t.Fatalf("residue 0 = %q, want P", res.Residues[0].Code)
	}
}

func TestParseMultipleCTermMods(t *testing.T) {
	res, err := Parse("PEPTIDE-[Amidated][Methyl]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	cterm := res.Mods[core.KeyCTerm]
	if len(cterm) != 2 {
		t.Fatalf("expected two C-term mods, got %d", len(cterm))
	}
	if cterm[0].PrimaryValue() != "Amidated" || cterm[1].PrimaryValue() != "Methyl" {
		t.Fatalf("C-term mods = %+v, want [Amidated Methyl]", cterm)
	}
}

func TestParseUnknownResidueError(t *testing.T) {
	_, err := Parse("[Acetyl][Formyl]-PEPTIDE")
	if err != nil {
		t.Fatalf("unexpected error on well-formed terminal mods: %v", err)
	}
	if _, err := Parse("PEP-TIDE"); err == nil {
		t.Fatal("expected an unknown-residue error for a stray top-level dash")
	} else if pe, ok := err.(*core.ParseError); !ok || pe.Kind != core.ErrUnknownResidue {
		t.Fatalf("error = %v, want ErrUnknownResidue", err)
	}
}

func TestParseGapKind(t *testing.T) {
	res, err := Parse("RTAAX[+367.0537]WT")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if res.Residues[4].Code != "X" {
		t.Fatalf("residue 4 = %q, want X", res.Residues[4].Code)
	}
	mods := res.Mods[4]
	if len(mods) != 1 || mods[0].Kind != core.ModGap {
		t.Fatalf("expected one gap mod at index 4, got %+v", mods)
	}
}
