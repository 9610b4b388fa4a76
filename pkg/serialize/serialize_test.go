package serialize

import (
	"testing"

	"github.com/rswhitlock/proforma/pkg/assemble"
)

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"EM[Oxidation]EVEES",
		"[Acetyl]-PEPTIDE-[Amidated]",
		"<13C>{Glycan:Hex}EMEVEES",
		"[Phospho]?PEPTIDE",
		"PEPTIDE/2",
		"PEPTIDE/2[+2Na,+1H]",
		"PEPTIDE+PEPTIDE",
		"PEPTIDE//PEPTIDE",
		"EMEVEES[Unimod:21]",
		"EM[+79.9663]EVEES",
		"PRT(ESFRMS)[+19.0523]ISK",
		"SEK[XLMOD:02001#XL1]UENCE//EMEVTK[#XL1]SESPLK",
		"RTAAX[+367.0537]WT",
		"<Carbamidomethyl@C>PEPCTIDE",
		"<[Unimod:4]@C>PEPCTIDE",
		"[Acetyl][Formyl]-PEPTIDE-[Amidated][Methyl]",
	}
	for _, raw := range tests {
		seq, err := assemble.FromProforma(raw)
		if err != nil {
			t.Errorf("FromProforma(%q) error: %v", raw, err)
			continue
		}
		got := Serialize(seq)
		if got != raw {
			t.Errorf("round trip mismatch: parsed %q, serialized %q", raw, got)
		}
	}
}

func TestCanonicalizesTrailingZeroMass(t *testing.T) {
	seq, err := assemble.FromProforma("EM[MASS:-10.0]EVEES")
	if err != nil {
		t.Fatalf("FromProforma error: %v", err)
	}
	got := Serialize(seq)
	want := "EM[MASS:-10]EVEES"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestDeduplicatesRepeatedPipePieces(t *testing.T) {
	seq, err := assemble.FromProforma("EM[Oxidation|Oxidation]EVEES")
	if err != nil {
		t.Fatalf("FromProforma error: %v", err)
	}
	got := Serialize(seq)
	want := "EM[Oxidation]EVEES"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestLocalizationScoreFormattedToTwoDecimals(t *testing.T) {
	seq, err := assemble.FromProforma("PEPT{Phospho#g1(0.8)}IDE")
	if err != nil {
		t.Fatalf("FromProforma error: %v", err)
	}
	got := Serialize(seq)
	want := "PEPT{Phospho#g1(0.80)}IDE"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}
