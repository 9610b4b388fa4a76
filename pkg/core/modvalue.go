package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reXLSuffix     = regexp.MustCompile(`^#(XL[A-Za-z0-9]+)$`)
	reAmbigSuffix  = regexp.MustCompile(`^#([^#(]+)(?:\(([0-9]*\.?[0-9]+)\))?$`)
	reMassShiftBody = regexp.MustCompile(`^[+-]\d+(\.\d+)?$`)
)

// ModificationValue is the parsed interior of a single modification
// bracket: an ordered list of pipe-separated interpretations, with a few
// fields lifted for convenience: PrimaryValue and Source from the primary
// interpretation, Mass from the first pipe value that carries one.
type ModificationValue struct {
	PrimaryValue string
	Source       string
	Mass         *float64
	PipeValues   []*PipeValue
}

// ParseModificationValue parses the interior text of one '[...]' or
// '{...}' (already stripped of its enclosing brackets) into an ordered
// list of pipe values, per the priority dispatch in §4.2.
func ParseModificationValue(raw string) *ModificationValue {
	mv := &ModificationValue{}
	components := strings.Split(raw, "|")
	for _, comp := range components {
		mv.PipeValues = append(mv.PipeValues, classifyComponent(comp))
	}
	if len(mv.PipeValues) > 0 {
		primary := mv.PipeValues[0]
		mv.PrimaryValue = primary.Value
		mv.Source = primary.Source
	}
	for _, pv := range mv.PipeValues {
		if pv.Mass != nil {
			m := *pv.Mass
			mv.Mass = &m
			break
		}
	}
	return mv
}

// InfoTags returns the text of every pipe value classified as an info tag.
func (mv *ModificationValue) InfoTags() []string {
	return mv.valuesOfKind(PVInfoTag)
}

// Synonyms returns the text of every pipe value classified as a synonym.
func (mv *ModificationValue) Synonyms() []string {
	return mv.valuesOfKind(PVSynonym)
}

func (mv *ModificationValue) valuesOfKind(k PVKind) []string {
	var out []string
	for _, pv := range mv.PipeValues {
		if pv.hasKind(k) {
			out = append(out, pv.Value)
		}
	}
	return out
}

// ObservedMass returns the first observed mass set under source Obs, if any.
func (mv *ModificationValue) ObservedMass() *float64 {
	for _, pv := range mv.PipeValues {
		if pv.ObservedMass != nil {
			return pv.ObservedMass
		}
	}
	return nil
}

// AmbiguityGroup returns the first ambiguity group label found on any pipe
// value, if any.
func (mv *ModificationValue) AmbiguityGroup() string {
	for _, pv := range mv.PipeValues {
		if pv.AmbiguityGroup != "" {
			return pv.AmbiguityGroup
		}
	}
	return ""
}

// LocalizationScore returns the first localization score found on any
// ambiguity pipe value, if any.
func (mv *ModificationValue) LocalizationScore() *float64 {
	for _, pv := range mv.PipeValues {
		if pv.LocalizationScore != nil {
			return pv.LocalizationScore
		}
	}
	return nil
}

// IsAmbiguityRef reports whether any pipe value is a bodiless ambiguity
// reference.
func (mv *ModificationValue) IsAmbiguityRef() bool {
	for _, pv := range mv.PipeValues {
		if pv.IsAmbiguityRef {
			return true
		}
	}
	return false
}

// IsCrosslinkRef reports whether any pipe value is a bodiless crosslink
// reference.
func (mv *ModificationValue) IsCrosslinkRef() bool {
	for _, pv := range mv.PipeValues {
		if pv.IsCrosslinkRef {
			return true
		}
	}
	return false
}

// CrosslinkID returns the crosslink group id carried by any pipe value, if
// any.
func (mv *ModificationValue) CrosslinkID() string {
	for _, pv := range mv.PipeValues {
		if pv.CrosslinkID != "" {
			return pv.CrosslinkID
		}
	}
	return ""
}

// IsBranch reports whether any pipe value defines a branch.
func (mv *ModificationValue) IsBranch() bool {
	for _, pv := range mv.PipeValues {
		if pv.IsBranch {
			return true
		}
	}
	return false
}

// IsBranchRef reports whether any pipe value is a bodiless branch reference.
func (mv *ModificationValue) IsBranchRef() bool {
	for _, pv := range mv.PipeValues {
		if pv.IsBranchRef {
			return true
		}
	}
	return false
}

// classifyComponent dispatches one '|'-delimited component through the
// priority rules of §4.2: branch/crosslink/ambiguity suffix first (if the
// whole component ends in one), then source/mass/synonym classification of
// whatever body remains.
func classifyComponent(raw string) *PipeValue {
	pv := &PipeValue{Raw: raw}

	body, suffixKind, suffixData, matched := splitHashSuffix(raw)
	if !matched {
		classifyBody(pv, raw)
		return pv
	}

	switch suffixKind {
	case "branch":
		if body == "" {
			pv.IsBranchRef = true
		} else {
			pv.IsBranch = true
		}
		pv.addKind(PVBranch)
	case "crosslink":
		pv.CrosslinkID = suffixData[0]
		if body == "" {
			pv.IsCrosslinkRef = true
		}
		pv.addKind(PVCrosslink)
	case "ambiguity":
		pv.AmbiguityGroup = suffixData[0]
		if suffixData[1] != "" {
			if score, err := strconv.ParseFloat(suffixData[1], 64); err == nil {
				pv.LocalizationScore = &score
			}
		}
		if body == "" {
			pv.IsAmbiguityRef = true
		}
		pv.addKind(PVAmbiguity)
	}

	if body != "" {
		classifyBody(pv, body)
	}
	return pv
}

// splitHashSuffix looks for a trailing '#...' marker on raw and reports
// whether it is a recognized branch, crosslink, or ambiguity-group suffix.
// On match it returns the text before the marker and the marker's parsed
// payload; suffixData holds (id) for crosslink or (label, score) for
// ambiguity.
func splitHashSuffix(raw string) (body string, kind string, suffixData []string, matched bool) {
	idx := strings.IndexByte(raw, '#')
	if idx < 0 {
		return raw, "", nil, false
	}
	prefix := raw[:idx]
	suffix := raw[idx:]

	if suffix == "#BRANCH" {
		return prefix, "branch", nil, true
	}
	if m := reXLSuffix.FindStringSubmatch(suffix); m != nil {
		return prefix, "crosslink", []string{m[1]}, true
	}
	if m := reAmbigSuffix.FindStringSubmatch(suffix); m != nil {
		return prefix, "ambiguity", []string{m[1], m[2]}, true
	}
	return raw, "", nil, false
}

// classifyBody applies the source/MASS/bare-mass-shift/synonym dispatch
// (§4.2 rules d-g) to body, mutating pv in place.
func classifyBody(pv *PipeValue, body string) {
	if src, rest, ok := splitKnownSource(body); ok {
		pv.Source = src
		dispatchBySource(pv, src, rest)
		return
	}

	if rest, ok := stripPrefixFold(body, "MASS:"); ok {
		pv.addKind(PVMass)
		if m, err := parseSignedFloat(rest); err == nil {
			pv.Mass = &m
			pv.Value = "MASS:" + canonicalizeMassText(rest)
		} else {
			pv.Warnings = append(pv.Warnings, fmt.Sprintf("malformed MASS value %q, degraded to synonym", rest))
			pv.AssignedKinds = nil
			pv.addKind(PVSynonym)
			pv.Value = body
		}
		return
	}

	if looksLikeMassShift(body) {
		pv.addKind(PVMass)
		m, err := parseSignedFloat(body)
		if err == nil {
			pv.Mass = &m
			pv.Value = canonicalizeMassText(body)
			return
		}
	}

	pv.addKind(PVSynonym)
	pv.Value = body
}

// splitKnownSource reports whether body begins with "SOURCE:" for a
// recognized source, returning the source token and remaining text.
func splitKnownSource(body string) (source, rest string, ok bool) {
	idx := strings.IndexByte(body, ':')
	if idx < 0 {
		return "", "", false
	}
	candidate := body[:idx]
	if !knownSources[candidate] {
		return "", "", false
	}
	return candidate, body[idx+1:], true
}

// dispatchBySource applies the per-source sub-classification of §4.2 rule d.
func dispatchBySource(pv *PipeValue, source, rest string) {
	switch source {
	case "Info", "INFO":
		pv.addKind(PVInfoTag)
		pv.Value = rest
	case "Obs", "OBS":
		pv.addKind(PVObservedMass)
		if m, err := parseSignedFloat(rest); err == nil {
			pv.ObservedMass = &m
			pv.Value = canonicalizeMassText(rest)
		} else {
			pv.Warnings = append(pv.Warnings, fmt.Sprintf("malformed Obs value %q, degraded to synonym", rest))
			pv.AssignedKinds = removeKind(pv.AssignedKinds, PVObservedMass)
			pv.addKind(PVSynonym)
			pv.Value = rest
		}
	case "Glycan", "GLYCAN":
		pv.addKind(PVGlycan)
		pv.IsValidGlycan = validateGlycanHook(stripWhitespace(rest))
		pv.Value = rest
	case "GNO", "G":
		pv.addKind(PVGap)
		pv.IsValidGlycan = true
		pv.Value = rest
	case "Formula", "FORMULA":
		pv.addKind(PVFormula)
		pv.IsValidFormula = validateFormulaHook(stripWhitespace(rest))
		pv.Value = rest
	case "XL", "XLMOD", "XL-MOD", "X":
		if idx := strings.Index(rest, "#XL"); idx >= 0 {
			if m := reXLSuffix.FindStringSubmatch(rest[idx:]); m != nil {
				pv.CrosslinkID = m[1]
				pv.addKind(PVCrosslink)
				pv.Value = rest[:idx]
				return
			}
		}
		pv.addKind(PVSynonym)
		pv.Value = rest
	default:
		pv.addKind(PVSynonym)
		pv.Value = rest
	}
}

func removeKind(kinds []PVKind, k PVKind) []PVKind {
	out := kinds[:0]
	for _, existing := range kinds {
		if existing != k {
			out = append(out, existing)
		}
	}
	return out
}

func stripPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) {
		return "", false
	}
	if !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

func looksLikeMassShift(s string) bool {
	return reMassShiftBody.MatchString(s)
}

func parseSignedFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// canonicalizeMassText preserves s exactly unless its fractional part
// consists entirely of zeros, in which case the fractional part and the
// decimal point are dropped (e.g. "-10.0" -> "-10").
func canonicalizeMassText(s string) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	for _, c := range s[dot+1:] {
		if c != '0' {
			return s
		}
	}
	return s[:dot]
}

func stripWhitespace(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// validateGlycanHook and validateFormulaHook are set by pkg/validate to
// avoid an import cycle (pkg/validate has no reason to depend on pkg/core,
// but pkg/core needs to invoke it while classifying pipe values).
var (
	validateGlycanHook  = func(string) bool { return false }
	validateFormulaHook = func(string) bool { return false }
)

// RegisterGlycanValidator installs the syntactic glycan validator used
// while classifying Glycan: pipe values.
func RegisterGlycanValidator(f func(string) bool) { validateGlycanHook = f }

// RegisterFormulaValidator installs the syntactic formula validator used
// while classifying Formula: pipe values.
func RegisterFormulaValidator(f func(string) bool) { validateFormulaHook = f }
