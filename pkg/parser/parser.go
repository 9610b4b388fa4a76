package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rswhitlock/proforma/pkg/core"
)

var reUnknownPosCount = regexp.MustCompile(`^\^(\d+)\?`)

// ParseResult is the output of a single-chain parse: everything Parse can
// determine before the assembler layers on charge, ionic species,
// chimeric siblings, and multi-chain grouping.
type ParseResult struct {
	GlobalMods          []*core.GlobalModification
	Residues            []*core.Residue
	Mods                map[int][]*core.Modification
	SequenceAmbiguities []*core.SequenceAmbiguity
}

// Parse runs the six-phase ProForma parse over a single chain/peptidoform
// string: leading global modifications, unknown-position modifications,
// labile modifications, the N-terminal modification, the C-terminal
// modification, and finally the main residue walk.
func Parse(s string) (*ParseResult, error) {
	res := &ParseResult{Mods: make(map[int][]*core.Modification)}

	s, err := parseGlobalModifications(s, res)
	if err != nil {
		return nil, err
	}
	s, err = parseUnknownPosition(s, res)
	if err != nil {
		return nil, err
	}
	s, err = parseLabile(s, res)
	if err != nil {
		return nil, err
	}
	s, err = parseNTerm(s, res)
	if err != nil {
		return nil, err
	}
	s, cTermBodies, err := extractCTerm(s)
	if err != nil {
		return nil, err
	}

	if err := parseMainWalk(s, res); err != nil {
		return nil, err
	}

	for _, body := range cTermBodies {
		mv := core.ParseModificationValue(body)
		res.Mods[core.KeyCTerm] = append(res.Mods[core.KeyCTerm], core.NewModification(core.ModTerminal, mv))
	}

	return res, nil
}

// parseGlobalModifications consumes every leading "<...>" block.
func parseGlobalModifications(s string, res *ParseResult) (string, error) {
	for strings.HasPrefix(s, "<") {
		end, err := RequireMatchingBracket(s, 0)
		if err != nil {
			return "", err
		}
		body := s[1:end]
		res.GlobalMods = append(res.GlobalMods, buildGlobalModification(body))
		s = s[end+1:]
	}
	return s, nil
}

func buildGlobalModification(body string) *core.GlobalModification {
	if idx := strings.Index(body, "@"); idx >= 0 {
		targets := strings.Split(body[idx+1:], ",")
		modPart := body[:idx]
		bracketed := strings.HasPrefix(modPart, "[") && strings.HasSuffix(modPart, "]")
		if bracketed {
			modPart = modPart[1 : len(modPart)-1]
		}
		mv := core.ParseModificationValue(modPart)
		mod := core.NewModification(core.ModGlobal, mv)
		return &core.GlobalModification{
			Type:           core.GlobalFixed,
			Mod:            mod,
			TargetResidues: targets,
			BodyBracketed:  bracketed,
		}
	}
	return &core.GlobalModification{
		Type:         core.GlobalIsotope,
		IsotopeLabel: body,
	}
}

// parseUnknownPosition consumes every leading "[body]^N?" or "[body]?" block.
func parseUnknownPosition(s string, res *ParseResult) (string, error) {
	for strings.HasPrefix(s, "[") {
		end, err := RequireMatchingBracket(s, 0)
		if err != nil {
			return "", err
		}
		rest := s[end+1:]
		if strings.HasPrefix(rest, "?") {
			mv := core.ParseModificationValue(s[1:end])
			mod := core.NewModification(core.ModUnknownPosition, mv)
			res.Mods[core.KeyUnknownPosition] = append(res.Mods[core.KeyUnknownPosition], mod)
			s = rest[1:]
			continue
		}
		if m := reUnknownPosCount.FindStringSubmatch(rest); m != nil {
			n, _ := strconv.Atoi(m[1])
			mv := core.ParseModificationValue(s[1:end])
			for i := 0; i < n; i++ {
				mod := core.NewModification(core.ModUnknownPosition, mv)
				res.Mods[core.KeyUnknownPosition] = append(res.Mods[core.KeyUnknownPosition], mod)
			}
			s = rest[len(m[0]):]
			continue
		}
		break
	}
	return s, nil
}

// parseLabile consumes every leading "{...}" block that is not itself the
// start of the residue sequence (labile mods only occur before the first
// residue or N-term mod). A block whose interior does not begin with
// "Glycan:" is a MalformedLabile error.
func parseLabile(s string, res *ParseResult) (string, error) {
	for strings.HasPrefix(s, "{") {
		end, err := RequireMatchingBracket(s, 0)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(s[1:end], "Glycan:") {
			return "", &core.ParseError{Kind: core.ErrMalformedLabile, Pos: 0, Detail: s[1:end]}
		}
		mv := core.ParseModificationValue(s[1:end])
		mod := core.NewModification(core.ModLabile, mv)
		res.Mods[core.KeyLabile] = append(res.Mods[core.KeyLabile], mod)
		s = s[end+1:]
	}
	return s, nil
}

// parseNTerm consumes a leading run of one or more balanced "[body]"
// blocks immediately followed by '-', e.g. "[Acetyl][Formyl]-PEPTIDE".
func parseNTerm(s string, res *ParseResult) (string, error) {
	if !strings.HasPrefix(s, "[") {
		return s, nil
	}
	pos := 0
	var ends []int
	for pos < len(s) && s[pos] == '[' {
		end, err := RequireMatchingBracket(s, pos)
		if err != nil {
			return s, err
		}
		ends = append(ends, end)
		pos = end + 1
	}
	if pos >= len(s) || s[pos] != '-' {
		return s, nil
	}
	start := 0
	for _, end := range ends {
		mv := core.ParseModificationValue(s[start+1 : end])
		mod := core.NewModification(core.ModTerminal, mv)
		res.Mods[core.KeyNTerm] = append(res.Mods[core.KeyNTerm], mod)
		start = end + 1
	}
	return s[pos+1:], nil
}

// extractCTerm splits off a trailing run of one or more balanced "[body]"
// blocks following a top-level '-', e.g. "PEPTIDE-[Amidated][Methyl]".
// It returns the remaining sequence text and the interior text of each
// C-term modification, in left-to-right order (nil if none is present).
func extractCTerm(s string) (string, []string, error) {
	dash := FindLastTopLevelDash(s)
	if dash < 0 || dash+1 >= len(s) || s[dash+1] != '[' {
		return s, nil, nil
	}
	pos := dash + 1
	var bodies []string
	for pos < len(s) && s[pos] == '[' {
		end, err := RequireMatchingBracket(s, pos)
		if err != nil {
			return s, nil, err
		}
		bodies = append(bodies, s[pos+1:end])
		pos = end + 1
	}
	if pos != len(s) {
		// trailing text after the bracket run means this dash wasn't a
		// C-term marker (e.g. it belonged to a site-mod's own body); leave
		// as-is.
		return s, nil, nil
	}
	return s[:dash], bodies, nil
}

// classifyModKind assigns a ModKind to a bracketed modification, in
// priority order: a crosslink or branch suffix on the value wins outright;
// otherwise a gap-armed bracket (the previous residue is the gap marker
// "X") is Gap, a bracket closing a localization range is Variable, and
// everything else is Static.
func classifyModKind(mv *core.ModificationValue, gapArmed, inRange bool) core.ModKind {
	switch {
	case mv.CrosslinkID() != "":
		return core.ModCrosslink
	case mv.IsBranch() || mv.IsBranchRef():
		return core.ModBranch
	case gapArmed:
		return core.ModGap
	case inRange:
		return core.ModVariable
	default:
		return core.ModStatic
	}
}

// parseMainWalk scans the residue sequence, attaching bracketed site
// modifications, ambiguous-site groups, ranges, and the leading sequence
// ambiguity block.
func parseMainWalk(s string, res *ParseResult) error {
	i := 0
	index := 0

	pendingRange := false
	rangeStart, rangeEnd := 0, 0

	for i < len(s) {
		c := s[i]
		switch c {
		case '(':
			if strings.HasPrefix(s[i:], "(?") {
				end, err := RequireMatchingBracket(s, i)
				if err != nil {
					return err
				}
				alt := s[i+2 : end]
				res.SequenceAmbiguities = append(res.SequenceAmbiguities, &core.SequenceAmbiguity{
					Position: index - 1,
					Alt:      alt,
				})
				i = end + 1
				continue
			}
			end, err := RequireMatchingBracket(s, i)
			if err != nil {
				return err
			}
			rangeStart = index
			if err := parseRangeInterior(s[i+1:end], res, &index); err != nil {
				return err
			}
			rangeEnd = index - 1
			pendingRange = end+1 < len(s) && s[end+1] == '['
			i = end + 1
			continue
		case ')':
			return &core.ParseError{Kind: core.ErrUnmatchedCloseParen, Pos: i}
		case '{':
			end, err := RequireMatchingBracket(s, i)
			if err != nil {
				return err
			}
			mv := core.ParseModificationValue(s[i+1 : end])
			mod := core.NewModification(core.ModAmbiguous, mv)
			if index == 0 {
				res.Mods[core.KeyUnknownPosition] = append(res.Mods[core.KeyUnknownPosition], mod)
			} else {
				res.Mods[index-1] = append(res.Mods[index-1], mod)
			}
			i = end + 1
			continue
		case '[':
			end, err := RequireMatchingBracket(s, i)
			if err != nil {
				return err
			}
			mv := core.ParseModificationValue(s[i+1 : end])

			if pendingRange {
				kind := classifyModKind(mv, false, true)
				mod := core.NewRangeModification(kind, mv, rangeStart, rangeEnd)
				for idx := rangeStart; idx <= rangeEnd; idx++ {
					res.Mods[idx] = append(res.Mods[idx], mod)
				}
				pendingRange = false
				i = end + 1
				continue
			}

			gapArmed := i > 0 && s[i-1] == 'X'
			kind := classifyModKind(mv, gapArmed, false)
			mod := core.NewModification(kind, mv)
			target := index - 1
			if target < 0 {
				target = 0
			}
			res.Mods[target] = append(res.Mods[target], mod)
			i = end + 1
			continue
		default:
			code, width := nextResidueCode(s[i:])
			if err := requireKnownResidue(code, i); err != nil {
				return err
			}
			r := &core.Residue{Code: code, Index: index}
			res.Residues = append(res.Residues, r)
			index++
			i += width
		}
	}
	return nil
}

// parseRangeInterior walks the residues inside a "(...)" range, appending
// them to res.Residues and advancing *index, and attaching any modification
// bracketed directly around one of those residues (as opposed to the
// shared range modification that may trail the closing paren).
func parseRangeInterior(interior string, res *ParseResult, index *int) error {
	i := 0
	for i < len(interior) {
		c := interior[i]
		if c == '[' {
			end, err := RequireMatchingBracket(interior, i)
			if err != nil {
				return err
			}
			mv := core.ParseModificationValue(interior[i+1 : end])
			gapArmed := i > 0 && interior[i-1] == 'X'
			kind := classifyModKind(mv, gapArmed, false)
			mod := core.NewModification(kind, mv)
			target := *index - 1
			if target < 0 {
				target = 0
			}
			res.Mods[target] = append(res.Mods[target], mod)
			i = end + 1
			continue
		}
		code, width := nextResidueCode(interior[i:])
		if err := requireKnownResidue(code, i); err != nil {
			return err
		}
		r := &core.Residue{Code: code, Index: *index}
		res.Residues = append(res.Residues, r)
		*index++
		i += width
	}
	return nil
}

// nextResidueCode returns the single-letter residue code at the start of s
// and its byte width (always 1 for the ASCII amino-acid alphabet used
// here).
func nextResidueCode(s string) (string, int) {
	return s[:1], 1
}

// requireKnownResidue reports an UnknownResidue error if code has no entry
// in the residue mass table, which canonical input never lacks unless it
// is malformed (e.g. stray grammar punctuation misread as a residue).
func requireKnownResidue(code string, pos int) error {
	if _, ok := core.ResidueMasses[code[0]]; !ok {
		return &core.ParseError{Kind: core.ErrUnknownResidue, Pos: pos, Detail: code}
	}
	return nil
}
