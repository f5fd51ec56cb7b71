// This file implements member operations: insert with the unique-email
// guard, and listing.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// memberRow mirrors the members table for sqlx scanning.
type memberRow struct {
	ID       int64          `db:"id"`
	Name     string         `db:"name"`
	Email    sql.NullString `db:"email"`
	Phone    sql.NullString `db:"phone"`
	JoinedAt sql.NullString `db:"joined_at"`
}

func (r memberRow) toMember() (*types.Member, error) {
	m := &types.Member{
		ID:   r.ID,
		Name: r.Name,
	}
	if r.Email.Valid {
		m.Email = r.Email.String
	}
	if r.Phone.Valid {
		m.Phone = r.Phone.String
	}
	if r.JoinedAt.Valid {
		ts, err := parseTimestamp(r.JoinedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing joined_at: %w", err)
		}
		m.JoinedAt = ts
	}
	return m, nil
}

// AddMember inserts a member. Empty email and phone are stored as NULL.
// A duplicate non-empty email is rejected with ErrDuplicateEmail and no
// row is created.
func (s *Store) AddMember(name, email, phone string) (*types.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	res, err := s.db.Exec(
		"INSERT INTO members (name, email, phone) VALUES (?, ?, ?)",
		name, nullString(email), nullString(phone),
	)
	if err != nil {
		if isUniqueViolation(err, "members.email") {
			return nil, types.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("inserting member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading member id: %w", err)
	}

	s.logInfo("member added", "member_id", id, "name", name)
	return s.getMember(id)
}

// ListMembers returns all members ordered by ID ascending.
func (s *Store) ListMembers() ([]*types.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	sqlQuery, args, err := s.membersQuery().Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building member query: %w", err)
	}

	start := time.Now()
	var rows []memberRow
	err = s.db.Select(&rows, sqlQuery, args...)
	s.logQuery(sqlQuery, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}

	members := make([]*types.Member, 0, len(rows))
	for _, r := range rows {
		m, err := r.toMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// membersQuery returns the base select for the members table, ordered by ID.
func (s *Store) membersQuery() *goqu.SelectDataset {
	return dialect.From(tableMembers).
		Select("id", "name", "email", "phone", "joined_at").
		Order(goqu.C("id").Asc())
}

// getMember retrieves a single member by ID.
func (s *Store) getMember(id int64) (*types.Member, error) {
	var row memberRow
	err := s.db.Get(&row,
		"SELECT id, name, email, phone, joined_at FROM members WHERE id = ?",
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member %d: %w", id, err)
	}
	return row.toMember()
}
