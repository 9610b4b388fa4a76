// Package serialize converts a core.Sequence back into canonical ProForma
// text.
package serialize

import (
	"strconv"
	"strings"

	"github.com/rswhitlock/proforma/pkg/core"
)

// Serialize renders seq as canonical ProForma text, handling multi-chain
// ("//") and chimeric ("+") grouping.
func Serialize(seq *core.Sequence) string {
	if seq.IsMultiChain {
		parts := make([]string, len(seq.Chains))
		for i, chain := range seq.Chains {
			parts[i] = serializeChainGroup(chain)
		}
		return strings.Join(parts, "//")
	}
	return serializeChainGroup(seq)
}

func serializeChainGroup(seq *core.Sequence) string {
	if len(seq.Peptidoforms) == 0 {
		return serializePeptidoform(seq)
	}
	parts := make([]string, 0, len(seq.Peptidoforms)+1)
	parts = append(parts, serializePeptidoform(seq))
	for _, p := range seq.Peptidoforms {
		parts = append(parts, serializePeptidoform(p))
	}
	return strings.Join(parts, "+")
}

// serializePeptidoform renders one peptidoform's global mods,
// unknown-position mods, labile mods, N-term, residues with their site
// mods, C-term, and charge/ionic suffix, in that canonical order.
func serializePeptidoform(seq *core.Sequence) string {
	var b strings.Builder

	for _, g := range seq.GlobalMods {
		b.WriteByte('<')
		if g.Type == core.GlobalIsotope {
			b.WriteString(g.IsotopeLabel)
		} else {
			if g.BodyBracketed {
				b.WriteByte('[')
				b.WriteString(serializeModBody(g.Mod.Value))
				b.WriteByte(']')
			} else {
				b.WriteString(serializeModBody(g.Mod.Value))
			}
			b.WriteByte('@')
			b.WriteString(strings.Join(g.TargetResidues, ","))
		}
		b.WriteByte('>')
	}

	unknown := seq.UnknownPositionMods()
	serializeUnknownPositionMods(&b, unknown)

	for _, m := range seq.LabileMods() {
		b.WriteByte('{')
		b.WriteString(serializeModBody(m.Value))
		b.WriteByte('}')
	}

	if nterm := seq.NTermMods(); len(nterm) > 0 {
		for _, m := range nterm {
			b.WriteByte('[')
			b.WriteString(serializeModBody(m.Value))
			b.WriteByte(']')
		}
		b.WriteByte('-')
	}

	for i, r := range seq.Residues {
		if ambig := firstLeadingAmbiguity(seq, i); ambig != "" {
			b.WriteString("(?")
			b.WriteString(ambig)
			b.WriteByte(')')
		}
		if rangeOpensAt(seq.Mods[i], i) {
			b.WriteByte('(')
		}
		b.WriteString(r.Code)
		for _, m := range seq.Mods[i] {
			if m.IsRange() {
				continue
			}
			serializeSiteMod(&b, m)
		}
		if closing := rangeClosingAt(seq.Mods[i], i); closing != nil {
			b.WriteByte(')')
			serializeSiteMod(&b, closing)
		}
	}

	if cterm := seq.CTermMods(); len(cterm) > 0 {
		b.WriteByte('-')
		for _, m := range cterm {
			b.WriteByte('[')
			b.WriteString(serializeModBody(m.Value))
			b.WriteByte(']')
		}
	}

	if seq.Charge != nil {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(*seq.Charge))
		if seq.IonicSpecies != "" {
			b.WriteByte('[')
			b.WriteString(seq.IonicSpecies)
			b.WriteByte(']')
		}
	}

	return b.String()
}

// serializeUnknownPositionMods emits a shared "[body]^N?" block when every
// unknown-position modification shares the same value, or one "[body]?"
// block per modification otherwise. A single occurrence always uses the
// bare "?" form.
func serializeUnknownPositionMods(b *strings.Builder, mods []*core.Modification) {
	if len(mods) == 0 {
		return
	}
	if len(mods) == 1 {
		b.WriteByte('[')
		b.WriteString(serializeModBody(mods[0].Value))
		b.WriteString("]?")
		return
	}
	first := serializeModBody(mods[0].Value)
	allSame := true
	for _, m := range mods[1:] {
		if serializeModBody(m.Value) != first {
			allSame = false
			break
		}
	}
	if allSame {
		b.WriteByte('[')
		b.WriteString(first)
		b.WriteString("]^")
		b.WriteString(strconv.Itoa(len(mods)))
		b.WriteByte('?')
		return
	}
	for _, m := range mods {
		b.WriteByte('[')
		b.WriteString(serializeModBody(m.Value))
		b.WriteString("]?")
	}
}

// rangeOpensAt reports whether any modification in mods begins a
// localization range at residue index i, e.g. the "(" in "(PEP)[body]".
func rangeOpensAt(mods []*core.Modification, i int) bool {
	for _, m := range mods {
		if m.IsRange() && m.RangeStart == i {
			return true
		}
	}
	return false
}

// rangeClosingAt returns the modification in mods that closes a
// localization range at residue index i, if any. The returned modification
// is shared across every residue the range covers, so it must be
// serialized once, at its RangeEnd, rather than once per covered residue.
func rangeClosingAt(mods []*core.Modification, i int) *core.Modification {
	for _, m := range mods {
		if m.IsRange() && m.RangeEnd == i {
			return m
		}
	}
	return nil
}

// firstLeadingAmbiguity returns the Alt text of a SequenceAmbiguity
// positioned immediately before residue index i, if any.
func firstLeadingAmbiguity(seq *core.Sequence, i int) string {
	for _, amb := range seq.SequenceAmbiguities {
		if amb.Position == i-1 {
			return amb.Alt
		}
	}
	return ""
}

// serializeSiteMod emits one residue-attached modification in the bracket
// form appropriate to its kind.
func serializeSiteMod(b *strings.Builder, m *core.Modification) {
	switch m.Kind {
	case core.ModAmbiguous:
		b.WriteByte('{')
		b.WriteString(serializeModBody(m.Value))
		b.WriteByte('}')
	default:
		b.WriteByte('[')
		b.WriteString(serializeModBody(m.Value))
		b.WriteByte(']')
	}
}

// serializeModBody joins a ModificationValue's pipe values back into
// "a|b|c" text, re-emitting each piece's source prefix and canonical
// numeric text verbatim. Pieces that render identically are deduplicated,
// keeping only their first occurrence.
func serializeModBody(mv *core.ModificationValue) string {
	if mv == nil {
		return ""
	}
	seen := make(map[string]bool, len(mv.PipeValues))
	pieces := make([]string, 0, len(mv.PipeValues))
	for _, pv := range mv.PipeValues {
		piece := serializePipePiece(pv)
		if seen[piece] {
			continue
		}
		seen[piece] = true
		pieces = append(pieces, piece)
	}
	return strings.Join(pieces, "|")
}

// serializePipePiece re-renders one pipe value's text, including its
// source prefix (if classification assigned one separately from Value)
// and any trailing branch/crosslink/ambiguity suffix.
func serializePipePiece(pv *core.PipeValue) string {
	var b strings.Builder
	if pv.Source != "" && !strings.HasPrefix(pv.Value, pv.Source+":") {
		b.WriteString(pv.Source)
		b.WriteByte(':')
	}
	b.WriteString(pv.Value)

	switch {
	case pv.IsBranch:
		b.WriteString("#BRANCH")
	case pv.IsBranchRef:
		b.WriteString("#BRANCH")
	case pv.CrosslinkID != "":
		if !strings.Contains(pv.Value, "#XL") {
			b.WriteByte('#')
			b.WriteString(pv.CrosslinkID)
		}
	case pv.AmbiguityGroup != "":
		b.WriteByte('#')
		b.WriteString(pv.AmbiguityGroup)
		if pv.LocalizationScore != nil {
			b.WriteByte('(')
			b.WriteString(strconv.FormatFloat(*pv.LocalizationScore, 'f', 2, 64))
			b.WriteByte(')')
		}
	}
	return b.String()
}
