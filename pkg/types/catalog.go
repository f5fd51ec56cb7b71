package types

import "errors"

// Catalog defines the operation surface of the library store. Callers open
// a backing store, perform catalog and loan operations, and close it when
// done. The interactive shell and the CLI verbs both speak this interface.
type Catalog interface {
	// AddBook inserts a new book with copies available equal to copies
	// total. Empty author and zero year are stored as absent.
	AddBook(title, author string, year, copies int) (*Book, error)

	// ListBooks returns all books ordered by ID ascending. An empty
	// catalog yields an empty slice, not an error.
	ListBooks() ([]*Book, error)

	// SearchBooks returns books whose title or author contains the
	// keyword as a substring. No match yields an empty slice.
	SearchBooks(keyword string) ([]*Book, error)

	// AddMember inserts a new member. A duplicate non-empty email is
	// rejected with ErrDuplicateEmail and no row is created.
	AddMember(name, email, phone string) (*Member, error)

	// ListMembers returns all members ordered by ID ascending.
	ListMembers() ([]*Member, error)

	// IssueBook creates an open loan for the given book and member and
	// decrements the book's available copies, atomically. The due date is
	// the issue date plus days; non-positive days fall back to the
	// configured loan period. Returns ErrBookNotFound,
	// ErrNoCopiesAvailable, or ErrMemberNotFound on failure.
	IssueBook(bookID, memberID int64, days int) (*Loan, error)

	// ReturnBook closes an open loan and increments the book's available
	// copies, atomically. Returns ErrLoanNotFound or ErrAlreadyReturned
	// on failure. Closing is irreversible.
	ReturnBook(loanID int64) (*Loan, error)

	// ListLoans returns loans joined with book title and member name,
	// ordered by loan ID ascending. With activeOnly, only loans without
	// a return date are included.
	ListLoans(activeOnly bool) ([]*LoanRecord, error)

	// Seed inserts the fixed sample books and members. Sample members
	// whose email already exists are skipped silently.
	Seed() error
}

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)
