// Package parser implements the phase-ordered ProForma parser: bracket
// extraction followed by the main residue walk.
package parser

import "github.com/rswhitlock/proforma/pkg/core"

var closers = map[byte]byte{
	'[': ']',
	'(': ')',
	'{': '}',
	'<': '>',
}

// depthDelta reports how a byte changes bracket nesting depth: +1 for any
// opener, -1 for any closer, 0 otherwise.
func depthDelta(c byte) int {
	switch c {
	case '[', '(', '{', '<':
		return 1
	case ']', ')', '}', '>':
		return -1
	}
	return 0
}

// FindMatchingBracket returns the index of the closing bracket matching the
// opener at s[start]. Only the opener's own bracket type is counted for
// nesting ("[a[b]c]" matches the final ']'); brackets of the other types
// inside the span are ignored. It returns -1 if the input has no matching
// closer.
func FindMatchingBracket(s string, start int) int {
	if start >= len(s) {
		return -1
	}
	open := s[start]
	want, ok := closers[open]
	if !ok {
		return -1
	}
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		if c == open {
			depth++
		} else if c == want {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// errKindForOpener maps an opening bracket byte to the ParseError kind
// raised when it is never closed.
func errKindForOpener(open byte) core.ErrorKind {
	switch open {
	case '<':
		return core.ErrUnclosedAngle
	case '[':
		return core.ErrUnclosedSquare
	case '{':
		return core.ErrUnclosedCurly
	case '(':
		return core.ErrUnclosedParen
	}
	return core.ErrUnclosedSquare
}

// RequireMatchingBracket is FindMatchingBracket but returns a *core.ParseError
// instead of -1 when the opener at s[start] is never closed.
func RequireMatchingBracket(s string, start int) (int, error) {
	end := FindMatchingBracket(s, start)
	if end < 0 {
		return -1, &core.ParseError{Kind: errKindForOpener(s[start]), Pos: start}
	}
	return end, nil
}

// FindFirstTopLevelDash returns the index of the first '-' encountered at
// bracket depth zero, or -1 if none exists, e.g. the dash after a leading
// N-term modification in "[body]-PEPTIDE". Parse does not call it: its
// N-term phase walks the leading bracket run directly.
func FindFirstTopLevelDash(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		depth += depthDelta(s[i])
		if depth == 0 && s[i] == '-' {
			return i
		}
	}
	return -1
}

// FindLastTopLevelDash returns the index of the last '-' encountered at
// bracket depth zero, or -1 if none exists. Used to split a trailing C-term
// modification ("PEPTIDE-[body]") from the rest of the sequence.
func FindLastTopLevelDash(s string) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		depth += depthDelta(s[i])
		if depth == 0 && s[i] == '-' {
			last = i
		}
	}
	return last
}

// FindLastTopLevelSlash returns the index of the last '/' encountered at
// bracket depth zero, or -1 if none exists. Used to split a trailing charge
// ("PEPTIDE/2") from the rest of a chain.
func FindLastTopLevelSlash(s string) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		depth += depthDelta(s[i])
		if depth == 0 && s[i] == '/' {
			last = i
		}
	}
	return last
}

// SplitTopLevelString splits s on every occurrence of sep that falls at
// bracket depth zero, leaving occurrences nested inside brackets intact.
// Used for the '+' (chimeric) and '//' (multi-chain) separators.
func SplitTopLevelString(s, sep string) []string {
	if sep == "" {
		return []string{s}
	}
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		depth += depthDelta(s[i])
		if depth == 0 && i+len(sep) <= len(s) && s[i:i+len(sep)] == sep {
			parts = append(parts, s[start:i])
			start = i + len(sep)
			i += len(sep) - 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
