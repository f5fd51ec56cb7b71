// Shared in-process test helpers for catalog integration tests.
package integration

import (
	"testing"

	"github.com/mesh-intelligence/shelfmark/internal/sqlite"
	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// newOpenStore creates a store opened against an isolated temp directory.
// Each test gets its own database file for isolation.
func newOpenStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := sqlite.NewStore()
	if err := s.Open(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

// mustAddBook adds a book or fails the test.
func mustAddBook(t *testing.T, s *sqlite.Store, title, author string, year, copies int) *types.Book {
	t.Helper()
	book, err := s.AddBook(title, author, year, copies)
	if err != nil {
		t.Fatalf("AddBook(%q): %v", title, err)
	}
	return book
}

// mustAddMember registers a member or fails the test.
func mustAddMember(t *testing.T, s *sqlite.Store, name, email, phone string) *types.Member {
	t.Helper()
	member, err := s.AddMember(name, email, phone)
	if err != nil {
		t.Fatalf("AddMember(%q): %v", name, err)
	}
	return member
}

// mustIssue issues a book or fails the test.
func mustIssue(t *testing.T, s *sqlite.Store, bookID, memberID int64, days int) *types.Loan {
	t.Helper()
	loan, err := s.IssueBook(bookID, memberID, days)
	if err != nil {
		t.Fatalf("IssueBook(%d, %d): %v", bookID, memberID, err)
	}
	return loan
}

// availableNow returns the current available count for a book.
func availableNow(t *testing.T, s *sqlite.Store, bookID int64) int {
	t.Helper()
	books, err := s.ListBooks()
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	for _, b := range books {
		if b.ID == bookID {
			return b.CopiesAvailable
		}
	}
	t.Fatalf("book %d not found", bookID)
	return 0
}
