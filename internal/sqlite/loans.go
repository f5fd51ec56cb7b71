// This file implements the loan lifecycle. A loan is OPEN from issue until
// return sets its return_date, which is terminal. Issue pairs the loan
// insert with the availability decrement, return pairs the close with the
// increment; each pair commits in one transaction so the invariant "open
// loans equal decremented copies" holds even if the process dies between
// statements.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// loanRow mirrors the loans table for sqlx scanning.
type loanRow struct {
	ID         int64          `db:"id"`
	BookID     int64          `db:"book_id"`
	MemberID   int64          `db:"member_id"`
	IssueDate  string         `db:"issue_date"`
	DueDate    string         `db:"due_date"`
	ReturnDate sql.NullString `db:"return_date"`
}

func (r loanRow) toLoan() (*types.Loan, error) {
	issue, err := parseTimestamp(r.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing issue_date: %w", err)
	}
	due, err := parseTimestamp(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}

	loan := &types.Loan{
		ID:        r.ID,
		BookID:    r.BookID,
		MemberID:  r.MemberID,
		IssueDate: issue,
		DueDate:   due,
	}
	if r.ReturnDate.Valid {
		ret, err := parseTimestamp(r.ReturnDate.String)
		if err != nil {
			return nil, fmt.Errorf("parsing return_date: %w", err)
		}
		loan.ReturnDate = &ret
	}
	return loan, nil
}

// loanRecordRow carries a loan row plus the joined book and member
// columns. Kept flat: sqlx cannot scan into fields promoted through an
// unexported embedded struct.
type loanRecordRow struct {
	ID         int64          `db:"id"`
	BookID     int64          `db:"book_id"`
	MemberID   int64          `db:"member_id"`
	IssueDate  string         `db:"issue_date"`
	DueDate    string         `db:"due_date"`
	ReturnDate sql.NullString `db:"return_date"`
	BookTitle  string         `db:"book_title"`
	MemberName string         `db:"member_name"`
}

func (r loanRecordRow) toLoanRecord() (*types.LoanRecord, error) {
	loan, err := loanRow{
		ID:         r.ID,
		BookID:     r.BookID,
		MemberID:   r.MemberID,
		IssueDate:  r.IssueDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
	}.toLoan()
	if err != nil {
		return nil, err
	}
	return &types.LoanRecord{
		Loan:       *loan,
		BookTitle:  r.BookTitle,
		MemberName: r.MemberName,
	}, nil
}

// IssueBook creates an open loan and decrements the book's available
// copies in one transaction. Non-positive days fall back to the
// configured loan period. The member is not looked up beforehand; the
// loans.member_id foreign key rejects an unknown member at insert time,
// surfaced as ErrMemberNotFound.
func (s *Store) IssueBook(bookID, memberID int64, days int) (*types.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	if days <= 0 {
		days = s.config.GetLoanDays()
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var available int
	err = tx.Get(&available, "SELECT copies_available FROM books WHERE id = ?", bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrBookNotFound
		}
		return nil, fmt.Errorf("getting book %d: %w", bookID, err)
	}
	if available <= 0 {
		return nil, types.ErrNoCopiesAvailable
	}

	// Truncate to seconds so the stored RFC 3339 text round-trips exactly.
	issueDate := time.Now().UTC().Truncate(time.Second)
	dueDate := issueDate.Add(time.Duration(days) * 24 * time.Hour)

	res, err := tx.Exec(
		"INSERT INTO loans (book_id, member_id, issue_date, due_date) VALUES (?, ?, ?, ?)",
		bookID, memberID, issueDate.Format(time.RFC3339), dueDate.Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, types.ErrMemberNotFound
		}
		return nil, fmt.Errorf("inserting loan: %w", err)
	}
	loanID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading loan id: %w", err)
	}

	if err := adjustCopiesTx(tx, bookID, -1); err != nil {
		return nil, fmt.Errorf("decrementing copies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing loan: %w", err)
	}

	s.logInfo("loan issued",
		"loan_id", loanID, "book_id", bookID, "member_id", memberID,
		"due", dueDate.Format("2006-01-02"))

	return &types.Loan{
		ID:        loanID,
		BookID:    bookID,
		MemberID:  memberID,
		IssueDate: issueDate,
		DueDate:   dueDate,
	}, nil
}

// ReturnBook closes an open loan and increments the book's available
// copies in one transaction. A second return of the same loan is rejected
// with ErrAlreadyReturned and changes nothing.
func (s *Store) ReturnBook(loanID int64) (*types.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var row loanRow
	err = tx.Get(&row,
		"SELECT id, book_id, member_id, issue_date, due_date, return_date FROM loans WHERE id = ?",
		loanID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrLoanNotFound
		}
		return nil, fmt.Errorf("getting loan %d: %w", loanID, err)
	}
	if row.ReturnDate.Valid {
		return nil, types.ErrAlreadyReturned
	}

	returnDate := time.Now().UTC().Truncate(time.Second)
	if _, err := tx.Exec(
		"UPDATE loans SET return_date = ? WHERE id = ?",
		returnDate.Format(time.RFC3339), loanID,
	); err != nil {
		return nil, fmt.Errorf("closing loan %d: %w", loanID, err)
	}

	if err := adjustCopiesTx(tx, row.BookID, +1); err != nil {
		return nil, fmt.Errorf("incrementing copies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing return: %w", err)
	}

	s.logInfo("loan returned", "loan_id", loanID, "book_id", row.BookID)

	loan, err := row.toLoan()
	if err != nil {
		return nil, err
	}
	loan.ReturnDate = &returnDate
	return loan, nil
}

// ListLoans returns loans joined with book title and member name, ordered
// by loan ID ascending. With activeOnly, only open loans are included.
func (s *Store) ListLoans(activeOnly bool) ([]*types.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	q := dialect.From(goqu.T(tableLoans).As("l")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.Ex{"l.book_id": goqu.I("b.id")})).
		Join(goqu.T(tableMembers).As("m"), goqu.On(goqu.Ex{"l.member_id": goqu.I("m.id")})).
		Select(
			goqu.I("l.id"), goqu.I("l.book_id"), goqu.I("l.member_id"),
			goqu.I("l.issue_date"), goqu.I("l.due_date"), goqu.I("l.return_date"),
			goqu.I("b.title").As("book_title"),
			goqu.I("m.name").As("member_name"),
		).
		Order(goqu.I("l.id").Asc())
	if activeOnly {
		q = q.Where(goqu.I("l.return_date").IsNull())
	}

	sqlQuery, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building loan query: %w", err)
	}

	start := time.Now()
	var rows []loanRecordRow
	err = s.db.Select(&rows, sqlQuery, args...)
	s.logQuery(sqlQuery, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("querying loans: %w", err)
	}

	records := make([]*types.LoanRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := r.toLoanRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
