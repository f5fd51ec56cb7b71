// This file implements snapshot export: the three tables written out as
// JSON or JSONL files plus a manifest, using an atomic temp-file, fsync,
// rename pattern for each file.
package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// Snapshot export formats.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

const manifestFileName = "manifest.json"

// Snapshot describes one completed export: identity, format, and per-table
// record counts. It is written to manifest.json alongside the data files.
type Snapshot struct {
	SnapshotID string   `json:"snapshot_id"`
	CreatedAt  string   `json:"created_at"`
	Format     string   `json:"format"`
	Books      int      `json:"books"`
	Members    int      `json:"members"`
	Loans      int      `json:"loans"`
	Files      []string `json:"files"`
}

// Export record shapes. Nullable columns use pointers so absent values
// export as JSON null rather than a zero value.
type bookExportRecord struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          *string `json:"author"`
	Year            *int64  `json:"year"`
	CopiesTotal     int     `json:"copies_total"`
	CopiesAvailable int     `json:"copies_available"`
	CreatedAt       *string `json:"created_at"`
}

type memberExportRecord struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	JoinedAt *string `json:"joined_at"`
}

type loanExportRecord struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"book_id"`
	MemberID   int64   `json:"member_id"`
	IssueDate  string  `json:"issue_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
}

// ExportSnapshot writes books, members, and loans to dir in the given
// format ("json" or "jsonl") plus a manifest.json, and returns the
// manifest. An empty dir falls back to the store's data directory. The
// manifest is written last, so its presence marks a complete snapshot.
func (s *Store) ExportSnapshot(dir, format string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	switch format {
	case FormatJSON, FormatJSONL:
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
	}

	if dir == "" {
		dir = s.config.DataDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	books, err := s.exportBooks()
	if err != nil {
		return nil, err
	}
	members, err := s.exportMembers()
	if err != nil {
		return nil, err
	}
	loans, err := s.exportLoans()
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		SnapshotID: generateSnapshotID(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Format:     format,
		Books:      len(books),
		Members:    len(members),
		Loans:      len(loans),
	}

	tables := []struct {
		name    string
		records []json.RawMessage
	}{
		{tableBooks, books},
		{tableMembers, members},
		{tableLoans, loans},
	}
	for _, tbl := range tables {
		fileName := tbl.name + "." + format
		if err := writeSnapshotFile(filepath.Join(dir, fileName), format, tbl.records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", fileName, err)
		}
		snapshot.Files = append(snapshot.Files, fileName)
	}

	manifest, err := jsoniter.ConfigFastest.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, manifestFileName), manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	s.logInfo("snapshot exported",
		"snapshot_id", snapshot.SnapshotID, "dir", dir, "format", format,
		"books", snapshot.Books, "members", snapshot.Members, "loans", snapshot.Loans)

	return snapshot, nil
}

// exportBooks reads all book rows and marshals them to raw records.
func (s *Store) exportBooks() ([]json.RawMessage, error) {
	sqlQuery, args, err := s.booksQuery().Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building book export query: %w", err)
	}
	var rows []bookRow
	if err := s.db.Select(&rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("querying books for export: %w", err)
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		rec := bookExportRecord{
			ID:              r.ID,
			Title:           r.Title,
			Author:          nullStringPtr(r.Author),
			Year:            nullInt64Ptr(r.Year),
			CopiesTotal:     r.CopiesTotal,
			CopiesAvailable: r.CopiesAvailable,
			CreatedAt:       nullStringPtr(r.CreatedAt),
		}
		data, err := jsoniter.ConfigFastest.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling book %d: %w", r.ID, err)
		}
		records = append(records, data)
	}
	return records, nil
}

// exportMembers reads all member rows and marshals them to raw records.
func (s *Store) exportMembers() ([]json.RawMessage, error) {
	sqlQuery, args, err := s.membersQuery().Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building member export query: %w", err)
	}
	var rows []memberRow
	if err := s.db.Select(&rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("querying members for export: %w", err)
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		rec := memberExportRecord{
			ID:       r.ID,
			Name:     r.Name,
			Email:    nullStringPtr(r.Email),
			Phone:    nullStringPtr(r.Phone),
			JoinedAt: nullStringPtr(r.JoinedAt),
		}
		data, err := jsoniter.ConfigFastest.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling member %d: %w", r.ID, err)
		}
		records = append(records, data)
	}
	return records, nil
}

// exportLoans reads all loan rows and marshals them to raw records.
func (s *Store) exportLoans() ([]json.RawMessage, error) {
	q := dialect.From(tableLoans).
		Select("id", "book_id", "member_id", "issue_date", "due_date", "return_date").
		Order(goqu.C("id").Asc())
	sqlQuery, args, err := q.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building loan export query: %w", err)
	}
	var rows []loanRow
	if err := s.db.Select(&rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("querying loans for export: %w", err)
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		rec := loanExportRecord{
			ID:         r.ID,
			BookID:     r.BookID,
			MemberID:   r.MemberID,
			IssueDate:  r.IssueDate,
			DueDate:    r.DueDate,
			ReturnDate: nullStringPtr(r.ReturnDate),
		}
		data, err := jsoniter.ConfigFastest.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling loan %d: %w", r.ID, err)
		}
		records = append(records, data)
	}
	return records, nil
}

// writeSnapshotFile writes records as a JSON array or as JSONL lines.
func writeSnapshotFile(path, format string, records []json.RawMessage) error {
	switch format {
	case FormatJSONL:
		var buf bytes.Buffer
		for _, rec := range records {
			buf.Write(rec)
			buf.WriteByte('\n')
		}
		return writeFileAtomic(path, buf.Bytes())
	case FormatJSON:
		doc, err := jsoniter.ConfigFastest.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		return writeFileAtomic(path, doc)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
	}
}

// writeFileAtomic writes data to path using the temp-file, fsync, rename
// pattern, so a crash mid-write never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// generateSnapshotID returns a UUID v7 for snapshot identity, falling back
// to v4 if v7 generation fails.
func generateSnapshotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullInt64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
