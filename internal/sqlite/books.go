// This file implements book operations: insert, list, keyword search, and
// the copy-adjustment primitive guarding the availability invariant.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// bookRow mirrors the books table for sqlx scanning.
type bookRow struct {
	ID              int64          `db:"id"`
	Title           string         `db:"title"`
	Author          sql.NullString `db:"author"`
	Year            sql.NullInt64  `db:"year"`
	CopiesTotal     int            `db:"copies_total"`
	CopiesAvailable int            `db:"copies_available"`
	CreatedAt       sql.NullString `db:"created_at"`
}

// toBook hydrates a scanned row into the domain type. NULL author and year
// become zero values.
func (r bookRow) toBook() (*types.Book, error) {
	b := &types.Book{
		ID:              r.ID,
		Title:           r.Title,
		CopiesTotal:     r.CopiesTotal,
		CopiesAvailable: r.CopiesAvailable,
	}
	if r.Author.Valid {
		b.Author = r.Author.String
	}
	if r.Year.Valid {
		b.Year = int(r.Year.Int64)
	}
	if r.CreatedAt.Valid {
		ts, err := parseTimestamp(r.CreatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		b.CreatedAt = ts
	}
	return b, nil
}

// AddBook inserts a book with copies available equal to copies total.
// Empty author and zero year are stored as NULL. Returns the stored row
// with its assigned ID.
func (s *Store) AddBook(title, author string, year, copies int) (*types.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	res, err := s.db.Exec(
		"INSERT INTO books (title, author, year, copies_total, copies_available) VALUES (?, ?, ?, ?, ?)",
		title, nullString(author), nullInt(year), copies, copies,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading book id: %w", err)
	}

	s.logInfo("book added", "book_id", id, "title", title, "copies", copies)
	return s.getBook(id)
}

// ListBooks returns all books ordered by ID ascending.
func (s *Store) ListBooks() ([]*types.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	return s.queryBooks(s.booksQuery())
}

// SearchBooks returns books whose title or author contains the keyword as
// a substring, using the database's default case folding.
func (s *Store) SearchBooks(keyword string) ([]*types.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	pattern := "%" + keyword + "%"
	q := s.booksQuery().Where(goqu.Or(
		goqu.C("title").Like(pattern),
		goqu.C("author").Like(pattern),
	))
	return s.queryBooks(q)
}

// booksQuery returns the base select for the books table, ordered by ID.
func (s *Store) booksQuery() *goqu.SelectDataset {
	return dialect.From(tableBooks).
		Select("id", "title", "author", "year", "copies_total", "copies_available", "created_at").
		Order(goqu.C("id").Asc())
}

// queryBooks executes a built select and hydrates the rows.
func (s *Store) queryBooks(q *goqu.SelectDataset) ([]*types.Book, error) {
	sqlQuery, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building book query: %w", err)
	}

	start := time.Now()
	var rows []bookRow
	err = s.db.Select(&rows, sqlQuery, args...)
	s.logQuery(sqlQuery, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}

	books := make([]*types.Book, 0, len(rows))
	for _, r := range rows {
		b, err := r.toBook()
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// getBook retrieves a single book by ID.
func (s *Store) getBook(id int64) (*types.Book, error) {
	var row bookRow
	err := s.db.Get(&row,
		"SELECT id, title, author, year, copies_total, copies_available, created_at FROM books WHERE id = ?",
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrBookNotFound
		}
		return nil, fmt.Errorf("getting book %d: %w", id, err)
	}
	return row.toBook()
}

// AdjustCopies changes a book's available-copy count by delta, rejecting
// with ErrInvalidQuantity any adjustment that would leave the count
// negative or above the total. Issue and return apply the same guard
// inside their transactions.
func (s *Store) AdjustCopies(bookID int64, delta int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := adjustCopiesTx(tx, bookID, delta); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing copy adjustment: %w", err)
	}

	s.logInfo("copies adjusted", "book_id", bookID, "delta", delta)
	return nil
}

// adjustCopiesTx applies the availability guard inside tx: the new count
// must stay within [0, copies_total], otherwise nothing is written.
func adjustCopiesTx(tx *sqlx.Tx, bookID int64, delta int) error {
	var counts struct {
		Available int `db:"copies_available"`
		Total     int `db:"copies_total"`
	}
	err := tx.Get(&counts, "SELECT copies_available, copies_total FROM books WHERE id = ?", bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrBookNotFound
		}
		return fmt.Errorf("getting book %d: %w", bookID, err)
	}

	next := counts.Available + delta
	if next < 0 || next > counts.Total {
		return types.ErrInvalidQuantity
	}

	if _, err := tx.Exec("UPDATE books SET copies_available = ? WHERE id = ?", next, bookID); err != nil {
		return fmt.Errorf("updating copies for book %d: %w", bookID, err)
	}
	return nil
}
