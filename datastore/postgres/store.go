// Package postgres is the relational DataStore built on sqlx and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/providers"
	"strings"
	"time"
)

type Store struct {
	db     *sqlx.DB
	blobs  providers.BlobProvider
	logger *zap.Logger
	clock  func() time.Time
}

var _ datastore.DataStore = (*Store)(nil)

// New wraps an open connection pool. The pool is owned by the caller.
func New(db *sqlx.DB, blobs providers.BlobProvider, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, blobs: blobs, logger: logger, clock: time.Now}
}

func (s *Store) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to reach postgres")
	}
	return nil
}

func (s *Store) Close() error { return nil }

// PersistSignatures is a no-op: every signature write is already durable.
func (s *Store) PersistSignatures(ctx context.Context) error { return nil }

func (s *Store) now() time.Time {
	return datastore.CanonicalTime(s.clock())
}

// whereBuilder numbers placeholders as clauses are added. Each clause uses
// %[1]d for its own placeholder, possibly more than once.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the full argument list.
func (w *whereBuilder) page(limit, offset int) (string, []interface{}) {
	n := len(w.args)
	args := append(append([]interface{}{}, w.args...), limit, offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(v string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(datastore.NormalizeString(v))) + "%"
}

const teamClause = `(
	LOWER(COALESCE(a.metadata->>'organization', '')) LIKE $%[1]d OR
	LOWER(COALESCE(a.metadata->>'organization_team', '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_hq, '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_dept, '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_team, '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_part, '')) LIKE $%[1]d
)`

func nullString(v string) sql.NullString {
	v = datastore.NormalizeString(v)
	return sql.NullString{String: v, Valid: v != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
