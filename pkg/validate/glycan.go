// Package validate provides syntactic validators for the Glycan: and
// Formula: pipe-value bodies, registered into pkg/core at init time so the
// parser can flag malformed composition strings without pkg/core needing
// to depend on this package.
package validate

import (
	"strconv"
	"strings"

	"github.com/rswhitlock/proforma/pkg/core"
)

func init() {
	core.RegisterGlycanValidator(Glycan)
	core.RegisterFormulaValidator(Formula)
}

// Glycan reports whether s is a well-formed space-free glycan composition:
// a sequence of known monosaccharide names, each optionally followed by a
// parenthesized positive integer count.
func Glycan(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	matched := false
	for i < len(s) {
		name, ok := matchMonosaccharide(s[i:])
		if !ok {
			return false
		}
		i += len(name)
		matched = true
		if i < len(s) && s[i] == '(' {
			close := strings.IndexByte(s[i:], ')')
			if close < 0 {
				return false
			}
			countText := s[i+1 : i+close]
			n, err := strconv.Atoi(countText)
			if err != nil || n <= 0 {
				return false
			}
			i += close + 1
		}
	}
	return matched
}

// matchMonosaccharide finds the longest MonosaccharideNames entry that s
// starts with.
func matchMonosaccharide(s string) (string, bool) {
	for _, name := range core.MonosaccharideNames {
		if strings.HasPrefix(s, name) {
			return name, true
		}
	}
	return "", false
}
