// Package shell implements the interactive numbered menu over a catalog.
// It reads choices and field values line by line, calls the catalog, and
// prints results. All input and output run through injected streams so
// sessions can be scripted in tests.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

const menu = `
Library Management - Menu
1. Add book
2. List books
3. Search books
4. Add member
5. List members
6. Issue book
7. Return book
8. List active loans
9. List all loans
10. Seed sample data
0. Exit`

// Shell drives one interactive session against a catalog.
type Shell struct {
	catalog  types.Catalog
	in       *bufio.Scanner
	out      io.Writer
	loanDays int
}

// Option configures a Shell.
type Option func(*Shell)

// WithLoanDays sets the default loan period shown in the issue prompt and
// applied when the user leaves it blank.
func WithLoanDays(days int) Option {
	return func(s *Shell) {
		if days > 0 {
			s.loanDays = days
		}
	}
}

// New returns a Shell reading from in and writing to out.
func New(catalog types.Catalog, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		catalog:  catalog,
		in:       bufio.NewScanner(in),
		out:      out,
		loanDays: types.DefaultLoanDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops over the menu until the user exits or input ends. End of
// input is treated like choosing Exit, so piped sessions terminate
// cleanly.
func (s *Shell) Run() error {
	for {
		fmt.Fprintln(s.out, menu)
		choice, ok := s.readLine("Choose an option: ")
		if !ok {
			fmt.Fprintln(s.out, "Goodbye!")
			return s.in.Err()
		}

		switch choice {
		case "1":
			s.addBook()
		case "2":
			s.listBooks()
		case "3":
			s.searchBooks()
		case "4":
			s.addMember()
		case "5":
			s.listMembers()
		case "6":
			s.issueBook()
		case "7":
			s.returnBook()
		case "8":
			s.listLoans(true)
		case "9":
			s.listLoans(false)
		case "10":
			s.seed()
		case "0":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice.")
		}
	}
}

// readLine prints prompt and reads one trimmed line. ok is false once
// input is exhausted.
func (s *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) addBook() {
	title, ok := s.readLine("Title: ")
	if !ok {
		return
	}
	author, ok := s.readLine("Author: ")
	if !ok {
		return
	}
	yearText, ok := s.readLine("Year: ")
	if !ok {
		return
	}
	copiesText, ok := s.readLine("Copies: ")
	if !ok {
		return
	}
	if copiesText == "" {
		copiesText = "1"
	}

	year := 0
	if yearText != "" {
		v, err := strconv.Atoi(yearText)
		if err != nil {
			fmt.Fprintln(s.out, "Year and copies must be numbers.")
			return
		}
		year = v
	}
	copies, err := strconv.Atoi(copiesText)
	if err != nil {
		fmt.Fprintln(s.out, "Year and copies must be numbers.")
		return
	}

	book, err := s.catalog.AddBook(title, author, year, copies)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Added book id=%d\n", book.ID)
}

func (s *Shell) listBooks() {
	books, err := s.catalog.ListBooks()
	if err != nil {
		s.printError(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(s.out, "No books found.")
		return
	}
	for _, b := range books {
		fmt.Fprintln(s.out, bookLine(b))
	}
}

func (s *Shell) searchBooks() {
	keyword, ok := s.readLine("Search keyword (title/author): ")
	if !ok {
		return
	}
	books, err := s.catalog.SearchBooks(keyword)
	if err != nil {
		s.printError(err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(s.out, "No results.")
		return
	}
	for _, b := range books {
		fmt.Fprintln(s.out, bookLine(b))
	}
}

func (s *Shell) addMember() {
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	email, ok := s.readLine("Email: ")
	if !ok {
		return
	}
	phone, ok := s.readLine("Phone: ")
	if !ok {
		return
	}

	member, err := s.catalog.AddMember(name, email, phone)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Added member id=%d\n", member.ID)
}

func (s *Shell) listMembers() {
	members, err := s.catalog.ListMembers()
	if err != nil {
		s.printError(err)
		return
	}
	if len(members) == 0 {
		fmt.Fprintln(s.out, "No members found.")
		return
	}
	for _, m := range members {
		fmt.Fprintln(s.out, memberLine(m))
	}
}

func (s *Shell) issueBook() {
	bookText, ok := s.readLine("Book ID: ")
	if !ok {
		return
	}
	memberText, ok := s.readLine("Member ID: ")
	if !ok {
		return
	}
	daysText, ok := s.readLine(fmt.Sprintf("Loan days (default %d): ", s.loanDays))
	if !ok {
		return
	}

	bookID, err := strconv.ParseInt(bookText, 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "IDs and days must be numbers.")
		return
	}
	memberID, err := strconv.ParseInt(memberText, 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "IDs and days must be numbers.")
		return
	}
	days := 0
	if daysText != "" {
		days, err = strconv.Atoi(daysText)
		if err != nil {
			fmt.Fprintln(s.out, "IDs and days must be numbers.")
			return
		}
	}

	loan, err := s.catalog.IssueBook(bookID, memberID, days)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Issued book %d to member %d. Due on %s\n",
		loan.BookID, loan.MemberID, loan.DueDate.Format(dateLayout))
}

func (s *Shell) returnBook() {
	loanText, ok := s.readLine("Loan ID: ")
	if !ok {
		return
	}
	loanID, err := strconv.ParseInt(loanText, 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "Loan ID must be a number.")
		return
	}

	if _, err := s.catalog.ReturnBook(loanID); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, "Book returned successfully.")
}

func (s *Shell) listLoans(activeOnly bool) {
	loans, err := s.catalog.ListLoans(activeOnly)
	if err != nil {
		s.printError(err)
		return
	}
	if len(loans) == 0 {
		fmt.Fprintln(s.out, "No loans found.")
		return
	}
	for _, l := range loans {
		fmt.Fprintln(s.out, loanLine(l))
	}
}

func (s *Shell) seed() {
	if err := s.catalog.Seed(); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, "Seeded sample books and members.")
}

// printError maps catalog sentinels to their menu messages. Anything
// unexpected is printed as-is rather than crashing the session.
func (s *Shell) printError(err error) {
	switch {
	case errors.Is(err, types.ErrBookNotFound):
		fmt.Fprintln(s.out, "Book not found.")
	case errors.Is(err, types.ErrMemberNotFound):
		fmt.Fprintln(s.out, "Member not found.")
	case errors.Is(err, types.ErrNoCopiesAvailable):
		fmt.Fprintln(s.out, "No copies available to issue.")
	case errors.Is(err, types.ErrLoanNotFound):
		fmt.Fprintln(s.out, "Loan record not found.")
	case errors.Is(err, types.ErrAlreadyReturned):
		fmt.Fprintln(s.out, "Book already returned.")
	case errors.Is(err, types.ErrDuplicateEmail):
		fmt.Fprintln(s.out, "Email already exists. Use a different email.")
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}
