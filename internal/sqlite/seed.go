// This file implements sample-data seeding.
package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// seedBook describes a sample book inserted by Seed.
type seedBook struct {
	title  string
	author string
	year   int
	copies int
}

// seedMember describes a sample member inserted by Seed.
type seedMember struct {
	name  string
	email string
	phone string
}

// The fixture set matches the sample data earlier versions of the tool
// seeded, so a reseeded database looks identical.
var sampleBooks = []seedBook{
	{"The Pragmatic Programmer", "Andrew Hunt", 1999, 2},
	{"Clean Code", "Robert C. Martin", 2008, 3},
	{"Introduction to Algorithms", "Cormen et al.", 2009, 1},
}

var sampleMembers = []seedMember{
	{"Alice Johnson", "alice@example.com", "1234567890"},
	{"Bob Singh", "bob@example.com", "9876543210"},
}

// Seed inserts the sample books and members in one transaction. Books
// insert unconditionally; members whose email already exists are skipped,
// so reseeding never duplicates members.
func (s *Store) Seed() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, b := range sampleBooks {
		_, err := tx.Exec(
			"INSERT INTO books (title, author, year, copies_total, copies_available) VALUES (?, ?, ?, ?, ?)",
			b.title, b.author, b.year, b.copies, b.copies,
		)
		if err != nil {
			return fmt.Errorf("seeding book %q: %w", b.title, err)
		}
	}

	for _, m := range sampleMembers {
		_, err := tx.Exec(
			"INSERT INTO members (name, email, phone) VALUES (?, ?, ?)",
			m.name, m.email, m.phone,
		)
		if err != nil {
			if isUniqueViolation(err, "members.email") {
				continue
			}
			return fmt.Errorf("seeding member %q: %w", m.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	s.logInfo("sample data seeded", "books", len(sampleBooks), "members", len(sampleMembers))
	return nil
}
