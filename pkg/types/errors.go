package types

import "errors"

// Catalog operation errors. All are reported at the operation boundary as
// user-facing messages; none crash the shell.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrLoanNotFound      = errors.New("loan record not found")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrAlreadyReturned   = errors.New("book already returned")
	ErrInvalidQuantity   = errors.New("copy adjustment out of range")
	ErrInvalidInput      = errors.New("invalid input")
)

// Export errors.
var (
	ErrUnknownFormat = errors.New("unknown export format")
)
