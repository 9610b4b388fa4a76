// Package sqlite persists parsed peptidoforms to a SQLite database: created
// tables, prepared statements, one write call per record, and an explicit
// Close.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rswhitlock/proforma/pkg/core"
)

// Writer persists Sequences and their modifications to a SQLite database.
type Writer struct {
	db              *sql.DB
	outputPath      string
	peptidoformStmt *sql.Stmt
	modificationStmt *sql.Stmt
	peptidoformID   int64
}

// NewWriter opens (creating if necessary) the SQLite database at
// outputPath and prepares its schema.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", outputPath, err)
	}

	w := &Writer{db: db, outputPath: outputPath}
	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) createTables() error {
	const schema = `
CREATE TABLE IF NOT EXISTS PeptidoformTable (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence  TEXT NOT NULL,
	canonical TEXT NOT NULL,
	charge    INTEGER,
	is_multi_chain INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ModificationTable (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	peptidoform_id  INTEGER NOT NULL REFERENCES PeptidoformTable(id),
	residue_index   INTEGER NOT NULL,
	kind            TEXT NOT NULL,
	primary_value   TEXT NOT NULL,
	mass            REAL
);
`
	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: create tables: %w", err)
	}
	return nil
}

func (w *Writer) prepareStatements() error {
	var err error
	w.peptidoformStmt, err = w.db.Prepare(
		`INSERT INTO PeptidoformTable (sequence, canonical, charge, is_multi_chain) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare peptidoform insert: %w", err)
	}

	w.modificationStmt, err = w.db.Prepare(
		`INSERT INTO ModificationTable (peptidoform_id, residue_index, kind, primary_value, mass) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare modification insert: %w", err)
	}
	return nil
}

// WriteSequence inserts seq and every modification it carries, keyed to a
// new PeptidoformTable row. canonical is the serialized ProForma text.
func (w *Writer) WriteSequence(seq *core.Sequence, canonical string) error {
	var charge sql.NullInt64
	if seq.Charge != nil {
		charge = sql.NullInt64{Int64: int64(*seq.Charge), Valid: true}
	}

	result, err := w.peptidoformStmt.Exec(core.StrippedString(seq), canonical, charge, boolToInt(seq.IsMultiChain))
	if err != nil {
		return fmt.Errorf("sqlite: insert peptidoform: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: read peptidoform id: %w", err)
	}
	w.peptidoformID = id

	for index, mods := range seq.Mods {
		for _, mod := range mods {
			var mass sql.NullFloat64
			if m := mod.Mass(); m != nil {
				mass = sql.NullFloat64{Float64: *m, Valid: true}
			}
			if _, err := w.modificationStmt.Exec(id, index, kindName(mod.Kind), mod.PrimaryValue(), mass); err != nil {
				return fmt.Errorf("sqlite: insert modification: %w", err)
			}
		}
	}
	return nil
}

func kindName(k core.ModKind) string {
	switch k {
	case core.ModStatic:
		return "static"
	case core.ModVariable:
		return "variable"
	case core.ModTerminal:
		return "terminal"
	case core.ModAmbiguous:
		return "ambiguous"
	case core.ModCrosslink:
		return "crosslink"
	case core.ModBranch:
		return "branch"
	case core.ModGap:
		return "gap"
	case core.ModLabile:
		return "labile"
	case core.ModUnknownPosition:
		return "unknown_position"
	case core.ModGlobal:
		return "global"
	default:
		return "unknown"
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Close finalizes prepared statements and closes the underlying database
// handle.
func (w *Writer) Close() error {
	if w.peptidoformStmt != nil {
		w.peptidoformStmt.Close()
	}
	if w.modificationStmt != nil {
		w.modificationStmt.Close()
	}
	return w.db.Close()
}
