// Schema DDL for the library database. The column set and constraints are
// kept compatible with library.db files produced by earlier versions of
// the tool, so the statements must not be reordered or reshaped.
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	createBooks = `CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    author TEXT,
    year INTEGER,
    copies_total INTEGER NOT NULL DEFAULT 1,
    copies_available INTEGER NOT NULL DEFAULT 1,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createMembers = `CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT UNIQUE,
    phone TEXT,
    joined_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

	createLoans = `CREATE TABLE IF NOT EXISTS loans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    book_id INTEGER NOT NULL,
    member_id INTEGER NOT NULL,
    issue_date TEXT NOT NULL,
    due_date TEXT NOT NULL,
    return_date TEXT,
    FOREIGN KEY(book_id) REFERENCES books(id),
    FOREIGN KEY(member_id) REFERENCES members(id)
);`
)

// schemaStatements lists the DDL applied on every Open. Each statement is
// idempotent, so an existing database file is left untouched.
var schemaStatements = []string{
	createBooks,
	createMembers,
	createLoans,
}

// applySchema creates the three tables if they do not exist yet.
func applySchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
