// Package proforma provides a streaming line-oriented reader over files of
// ProForma strings, one per line.
package proforma

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rswhitlock/proforma/pkg/assemble"
	"github.com/rswhitlock/proforma/pkg/core"
)

// Reader scans a file of newline-separated ProForma strings, skipping blank
// lines and lines beginning with '#'.
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
	current *core.Sequence
	err     error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next advances to the next ProForma entry, returning false when the input
// is exhausted or a parse error occurred. Check Err after Next returns
// false to distinguish the two.
func (rd *Reader) Next() bool {
	for rd.scanner.Scan() {
		rd.lineNum++
		line := strings.TrimSpace(rd.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seq, err := assemble.FromProforma(line)
		if err != nil {
			rd.err = fmt.Errorf("line %d: %w", rd.lineNum, err)
			return false
		}
		rd.current = seq
		return true
	}
	if err := rd.scanner.Err(); err != nil {
		rd.err = err
	}
	return false
}

// Sequence returns the most recently parsed entry.
func (rd *Reader) Sequence() *core.Sequence { return rd.current }

// Err returns the first error encountered, if any.
func (rd *Reader) Err() error { return rd.err }
