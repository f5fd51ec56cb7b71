package types

import "time"

// Loan status labels derived for loan listings.
const (
	LoanStatusIssued   = "Issued"
	LoanStatusReturned = "Returned"
)

// Loan records one book copy lent to one member for a bounded period.
// A loan is open while ReturnDate is nil; setting ReturnDate closes it
// permanently. An open loan corresponds to exactly one decremented unit
// of its book's available-copy count.
type Loan struct {
	ID         int64
	BookID     int64
	MemberID   int64
	IssueDate  time.Time
	DueDate    time.Time
	ReturnDate *time.Time
}

// Active reports whether the loan is still open.
func (l *Loan) Active() bool {
	return l.ReturnDate == nil
}

// Status returns the display label for the loan's current state.
func (l *Loan) Status() string {
	if l.Active() {
		return LoanStatusIssued
	}
	return LoanStatusReturned
}

// Overdue reports whether the loan is open past its due date.
func (l *Loan) Overdue(now time.Time) bool {
	return l.Active() && now.After(l.DueDate)
}

// LoanRecord is a loan joined with its book title and member name, the
// shape returned by loan listings.
type LoanRecord struct {
	Loan
	BookTitle  string
	MemberName string
}
