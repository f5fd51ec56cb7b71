package types

import "time"

// Book represents one catalog title together with its copy counts.
// Author and Year are optional; the zero value means "not recorded" and is
// persisted as NULL. CopiesAvailable stays within [0, CopiesTotal].
type Book struct {
	ID              int64
	Title           string
	Author          string
	Year            int
	CopiesTotal     int
	CopiesAvailable int
	CreatedAt       time.Time
}

// InStock reports whether at least one copy is available to issue.
func (b *Book) InStock() bool {
	return b.CopiesAvailable > 0
}
