package shell

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

const dateLayout = "2006-01-02"

func bookLine(b *types.Book) string {
	return fmt.Sprintf("[%d] %s - %s (%s) | available: %d/%d",
		b.ID, b.Title, orDash(b.Author), yearText(b.Year), b.CopiesAvailable, b.CopiesTotal)
}

func memberLine(m *types.Member) string {
	return fmt.Sprintf("[%d] %s | email: %s | phone: %s",
		m.ID, m.Name, orDash(m.Email), orDash(m.Phone))
}

func loanLine(l *types.LoanRecord) string {
	return fmt.Sprintf("[%d] Book: (%d) %s -> Member: (%d) %s | %s | issue: %s | due: %s",
		l.ID, l.BookID, l.BookTitle, l.MemberID, l.MemberName,
		l.Status(), l.IssueDate.Format(dateLayout), l.DueDate.Format(dateLayout))
}

// orDash substitutes a dash for fields the row never had.
func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func yearText(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}
