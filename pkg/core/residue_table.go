// Package core provides the ProForma value model: residues, modifications,
// pipe values, and the sequences (peptidoforms) that own them.
package core

// Monoisotopic atomic masses used throughout mass calculation.
const (
	MassProton = 1.007277
	MassH      = 1.007825
	MassO      = 15.99491463
)

// ResidueMasses maps single-letter residue codes to monoisotopic mass.
// X is the gap marker and carries no intrinsic mass.
var ResidueMasses = map[byte]float64{
	'A': 71.037114,
	'R': 156.101111,
	'N': 114.042927,
	'D': 115.026943,
	'C': 103.009185,
	'E': 129.042593,
	'Q': 128.058578,
	'G': 57.021464,
	'H': 137.058912,
	'I': 113.084064,
	'L': 113.084064,
	'K': 128.094963,
	'M': 131.040485,
	'F': 147.068414,
	'P': 97.052764,
	'S': 87.032028,
	'T': 101.047679,
	'U': 255.15829,
	'W': 186.079313,
	'Y': 163.06332,
	'V': 99.068414,
	'X': 0,
	'O': 150.03794,
}

// MonosaccharideNames is the canonical glycan monomer set, ordered
// longest-name-first so that greedy prefix matching never shadows a longer
// name with one of its own prefixes (e.g. "Hex" is a prefix of "HexNAc").
var MonosaccharideNames = []string{
	"HexNAcS",
	"HexNAc",
	"NeuAc",
	"NeuGc",
	"HexS",
	"HexP",
	"dHex",
	"Fuc",
	"Pen",
	"Hex",
}

// ResidueMass returns the monoisotopic mass of a single-letter residue code,
// and whether the code is recognized.
func ResidueMass(code string) (float64, bool) {
	if len(code) == 0 {
		return 0, false
	}
	m, ok := ResidueMasses[code[0]]
	return m, ok
}
