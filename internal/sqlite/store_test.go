// Unit tests for store lifecycle: open, close, reopen.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// setupStore creates a Store opened against a fresh temp directory,
// ready for catalog operations. Close is deferred via t.Cleanup.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, s.Open(config))
	t.Cleanup(func() { s.Close() })
	return s
}

// recordingLogger captures log messages for assertions.
type recordingLogger struct {
	debugs []string
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.debugs = append(l.debugs, msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.errors = append(l.errors, msg) }

func TestStoreOpen(t *testing.T) {
	dataDir := t.TempDir()

	s := NewStore()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}
	require.NoError(t, s.Open(config))
	t.Cleanup(func() { s.Close() })

	// The database file materializes once the schema is applied.
	_, err := os.Stat(filepath.Join(dataDir, dbFileName))
	assert.NoError(t, err)

	// Double open is rejected.
	err = s.Open(config)
	assert.ErrorIs(t, err, types.ErrAlreadyOpen)
}

func TestStoreOpenRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{
			name:    "empty backend",
			config:  types.Config{DataDir: "x"},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  types.Config{Backend: "postgres", DataDir: "x"},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name:    "negative loan days",
			config:  types.Config{Backend: types.BackendSQLite, LoanDays: -3},
			wantErr: types.ErrLoanDaysInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			err := s.Open(tt.config)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStoreClose(t *testing.T) {
	s := NewStore()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, s.Open(config))

	require.NoError(t, s.Close())

	// Idempotent.
	assert.NoError(t, s.Close())

	// Operations fail once closed.
	_, err := s.ListBooks()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	_, err = s.AddBook("After close", "", 0, 1)
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	err = s.Seed()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestStoreReopenKeepsData(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	s := NewStore()
	require.NoError(t, s.Open(config))
	_, err := s.AddBook("Persistent", "Author", 2001, 2)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A second store on the same directory sees the earlier rows; the
	// schema statements are idempotent.
	reopened := NewStore()
	require.NoError(t, reopened.Open(config))
	t.Cleanup(func() { reopened.Close() })

	books, err := reopened.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Persistent", books[0].Title)
	assert.Equal(t, 2, books[0].CopiesAvailable)
}

func TestStoreLogging(t *testing.T) {
	logger := &recordingLogger{}

	s := NewStore(WithLogger(logger))
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, s.Open(config))
	t.Cleanup(func() { s.Close() })

	_, err := s.AddBook("Logged", "", 0, 1)
	require.NoError(t, err)
	_, err = s.ListBooks()
	require.NoError(t, err)

	assert.Contains(t, logger.infos, "book added")
	assert.Contains(t, logger.debugs, "store opened")
	assert.Contains(t, logger.debugs, "query executed")
	assert.Empty(t, logger.errors)
}
