// Unit tests for book rows: add, list, search, copy adjustments.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

func TestAddBook(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "all fields populated",
			check: func(t *testing.T, s *Store) {
				book, err := s.AddBook("The Pragmatic Programmer", "Andrew Hunt", 1999, 2)
				require.NoError(t, err)

				assert.Equal(t, int64(1), book.ID)
				assert.Equal(t, "The Pragmatic Programmer", book.Title)
				assert.Equal(t, "Andrew Hunt", book.Author)
				assert.Equal(t, 1999, book.Year)
				assert.Equal(t, 2, book.CopiesTotal)
				assert.Equal(t, 2, book.CopiesAvailable)
				assert.False(t, book.CreatedAt.IsZero())
				assert.True(t, book.InStock())
			},
		},
		{
			name: "author and year optional",
			check: func(t *testing.T, s *Store) {
				book, err := s.AddBook("Anonymous Pamphlet", "", 0, 1)
				require.NoError(t, err)

				assert.Empty(t, book.Author)
				assert.Zero(t, book.Year)
				assert.Equal(t, 1, book.CopiesAvailable)
			},
		},
		{
			name: "ids increase monotonically",
			check: func(t *testing.T, s *Store) {
				first, err := s.AddBook("First", "", 0, 1)
				require.NoError(t, err)
				second, err := s.AddBook("Second", "", 0, 1)
				require.NoError(t, err)

				assert.Equal(t, first.ID+1, second.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupStore(t))
		})
	}
}

func TestListBooks(t *testing.T) {
	s := setupStore(t)

	books, err := s.ListBooks()
	require.NoError(t, err)
	assert.Empty(t, books)

	_, err = s.AddBook("Clean Code", "Robert C. Martin", 2008, 3)
	require.NoError(t, err)
	_, err = s.AddBook("Introduction to Algorithms", "Cormen et al.", 2009, 1)
	require.NoError(t, err)

	books, err = s.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Clean Code", books[0].Title)
	assert.Equal(t, "Introduction to Algorithms", books[1].Title)
	assert.Less(t, books[0].ID, books[1].ID)
}

func TestSearchBooks(t *testing.T) {
	s := setupStore(t)

	_, err := s.AddBook("The Pragmatic Programmer", "Andrew Hunt", 1999, 2)
	require.NoError(t, err)
	_, err = s.AddBook("Clean Code", "Robert C. Martin", 2008, 3)
	require.NoError(t, err)
	_, err = s.AddBook("The Go Programming Language", "Alan Donovan", 2015, 1)
	require.NoError(t, err)

	tests := []struct {
		name       string
		keyword    string
		wantTitles []string
	}{
		{
			name:       "substring of title",
			keyword:    "Programm",
			wantTitles: []string{"The Pragmatic Programmer", "The Go Programming Language"},
		},
		{
			name:       "substring of author",
			keyword:    "Martin",
			wantTitles: []string{"Clean Code"},
		},
		{
			name:       "matches title or author",
			keyword:    "an",
			wantTitles: []string{"The Pragmatic Programmer", "Clean Code", "The Go Programming Language"},
		},
		{
			name:       "case folds per sqlite like",
			keyword:    "pragmatic",
			wantTitles: []string{"The Pragmatic Programmer"},
		},
		{
			name:       "no match yields empty slice",
			keyword:    "zzz",
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := s.SearchBooks(tt.keyword)
			require.NoError(t, err)

			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestAdjustCopies(t *testing.T) {
	tests := []struct {
		name    string
		delta   int
		wantErr error
		want    int
	}{
		{name: "decrement", delta: -1, want: 1},
		{name: "noop", delta: 0, want: 2},
		{name: "below zero", delta: -3, wantErr: types.ErrInvalidQuantity, want: 2},
		{name: "above total", delta: 1, wantErr: types.ErrInvalidQuantity, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupStore(t)
			book, err := s.AddBook("Adjustable", "", 0, 2)
			require.NoError(t, err)

			err = s.AdjustCopies(book.ID, tt.delta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			books, err := s.ListBooks()
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, tt.want, books[0].CopiesAvailable)
			assert.Equal(t, 2, books[0].CopiesTotal)
		})
	}
}

func TestAdjustCopiesMissingBook(t *testing.T) {
	s := setupStore(t)

	err := s.AdjustCopies(99, -1)
	assert.ErrorIs(t, err, types.ErrBookNotFound)
}
