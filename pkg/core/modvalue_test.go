package core

import "testing"

func TestParseModificationValueSynonym(t *testing.T) {
	mv := ParseModificationValue("Phospho")
	if mv.PrimaryValue != "Phospho" {
		t.Fatalf("PrimaryValue = %q, want %q", mv.PrimaryValue, "Phospho")
	}
	if len(mv.PipeValues) != 1 || mv.PipeValues[0].Kind != PVSynonym {
		t.Fatalf("expected single synonym pipe value, got %+v", mv.PipeValues)
	}
}

func TestParseModificationValueSourcePrefix(t *testing.T) {
	mv := ParseModificationValue("Unimod:21")
	if mv.Source != "Unimod" {
		t.Fatalf("Source = %q, want %q", mv.Source, "Unimod")
	}
	if mv.PrimaryValue != "21" {
		t.Fatalf("PrimaryValue = %q, want %q", mv.PrimaryValue, "21")
	}
}

func TestParseModificationValueBareMassShift(t *testing.T) {
	mv := ParseModificationValue("+79.9663")
	if mv.Mass == nil {
		t.Fatal("expected a resolved mass")
	}
	if *mv.Mass != 79.9663 {
		t.Fatalf("Mass = %v, want 79.9663", *mv.Mass)
	}
}

func TestParseModificationValueExplicitMassPreservesZeroTrim(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"MASS:-10.0", "MASS:-10"},
		{"MASS:79.9660", "MASS:79.9660"},
	}
	for _, tt := range tests {
		mv := ParseModificationValue(tt.raw)
		got := mv.PipeValues[0].Value
		if got != tt.want {
			t.Errorf("ParseModificationValue(%q).PipeValues[0].Value = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseModificationValuePipedSynonymsAndInfo(t *testing.T) {
	mv := ParseModificationValue("Phospho|INFO:a label|Obs:79.9")
	if len(mv.PipeValues) != 3 {
		t.Fatalf("expected 3 pipe values, got %d", len(mv.PipeValues))
	}
	if got := mv.InfoTags(); len(got) != 1 || got[0] != "a label" {
		t.Fatalf("InfoTags() = %v", got)
	}
	if obs := mv.ObservedMass(); obs == nil || *obs != 79.9 {
		t.Fatalf("ObservedMass() = %v, want 79.9", obs)
	}
}

func TestParseModificationValueBranchDefAndRef(t *testing.T) {
	def := ParseModificationValue("Xlink:DSS#BRANCH")
	if !def.IsBranch() {
		t.Fatal("expected branch definition")
	}
	ref := ParseModificationValue("#BRANCH")
	if !ref.IsBranchRef() {
		t.Fatal("expected branch reference")
	}
}

func TestParseModificationValueCrosslink(t *testing.T) {
	def := ParseModificationValue("XL:Disulfide#XL1")
	if def.CrosslinkID() != "XL1" {
		t.Fatalf("CrosslinkID() = %q, want XL1", def.CrosslinkID())
	}
	ref := ParseModificationValue("#XL1")
	if !ref.IsCrosslinkRef() || ref.CrosslinkID() != "XL1" {
		t.Fatalf("expected crosslink reference XL1, got %+v", ref)
	}
}

func TestParseModificationValueAmbiguityGroupWithScore(t *testing.T) {
	mv := ParseModificationValue("Phospho#g1(0.8)")
	if mv.AmbiguityGroup() != "g1" {
		t.Fatalf("AmbiguityGroup() = %q, want g1", mv.AmbiguityGroup())
	}
	score := mv.LocalizationScore()
	if score == nil || *score != 0.8 {
		t.Fatalf("LocalizationScore() = %v, want 0.8", score)
	}
}

func TestParseModificationValueMalformedObsDegradesToSynonym(t *testing.T) {
	mv := ParseModificationValue("Obs:notanumber")
	pv := mv.PipeValues[0]
	if pv.Kind != PVSynonym {
		t.Fatalf("Kind = %v, want PVSynonym after degrade", pv.Kind)
	}
	if len(pv.Warnings) == 0 {
		t.Fatal("expected a warning recorded for malformed Obs value")
	}
}
