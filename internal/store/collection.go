package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio-server/internal/apperrors"
)

// ErrNotFound is the cause attached to the NotFoundError returned by FindByID.
var ErrNotFound = errors.New("record not found")

// Record is implemented by every type kept in a Collection.
type Record interface {
	RecordID() string
	SetRecordID(id string)
}

// creationStamper is implemented by records that carry an insertion time.
type creationStamper interface {
	StampCreated(t time.Time)
}

type recordPtr[T any] interface {
	*T
	Record
}

// Filter is an equality match on top-level JSON field names. A nil value
// matches records where the field is null or absent.
type Filter map[string]any

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id  TEXT NOT NULL UNIQUE,
	doc TEXT NOT NULL
)`

// Collection persists records of one type to its own SQLite file. The
// file runs in WAL mode so every write is appended to the log, and a
// single connection serializes writers.
type Collection[T any, P recordPtr[T]] struct {
	resource string
	db       *sql.DB
}

// OpenCollection opens (creating if needed) the collection file at path.
// resource names the record kind in not-found errors.
func OpenCollection[T any, P recordPtr[T]](path, resource string) (*Collection[T, P], error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, apperrors.NewStorageError("open "+resource+" collection", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createRecordsTable); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("create "+resource+" collection", err)
	}

	return &Collection[T, P]{resource: resource, db: db}, nil
}

// Insert assigns rec a fresh id, persists it and returns it.
func (c *Collection[T, P]) Insert(ctx context.Context, rec P) (P, error) {
	rec.SetRecordID(uuid.NewString())
	if s, ok := any(rec).(creationStamper); ok {
		s.StampCreated(time.Now())
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, apperrors.NewStorageError("encode "+c.resource, err)
	}

	if _, err := c.db.ExecContext(ctx,
		`INSERT INTO records (id, doc) VALUES (?, ?)`,
		rec.RecordID(), string(doc),
	); err != nil {
		return nil, apperrors.NewStorageError("insert "+c.resource, err)
	}

	return rec, nil
}

// FindAll returns the records matching filter in insertion order. The
// result is never nil.
func (c *Collection[T, P]) FindAll(ctx context.Context, filter Filter) ([]P, error) {
	where, args, err := filter.sql()
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error(), err)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT doc FROM records`+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("find "+c.resource, err)
	}
	defer rows.Close()

	out := make([]P, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, apperrors.NewStorageError("read "+c.resource, err)
		}
		rec := P(new(T))
		if err := json.Unmarshal([]byte(doc), rec); err != nil {
			return nil, apperrors.NewStorageError("decode "+c.resource, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("find "+c.resource, err)
	}

	return out, nil
}

// FindByID returns the record with id, or a NotFoundError wrapping
// ErrNotFound.
func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (P, error) {
	var doc string
	err := c.db.QueryRowContext(ctx, `SELECT doc FROM records WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(c.resource).WithCause(ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.NewStorageError("find "+c.resource, err)
	}

	rec := P(new(T))
	if err := json.Unmarshal([]byte(doc), rec); err != nil {
		return nil, apperrors.NewStorageError("decode "+c.resource, err)
	}
	return rec, nil
}

// Remove deletes the record with id and reports how many were removed
// (0 or 1). A missing id is not an error.
func (c *Collection[T, P]) Remove(ctx context.Context, id string) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return 0, apperrors.NewStorageError("remove "+c.resource, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStorageError("remove "+c.resource, err)
	}
	return n, nil
}

// Count returns the number of stored records.
func (c *Collection[T, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, apperrors.NewStorageError("count "+c.resource, err)
	}
	return n, nil
}

// Close releases the collection file.
func (c *Collection[T, P]) Close() error {
	return c.db.Close()
}

// sql renders the filter as a WHERE clause. Keys are sorted so the same
// filter always produces the same statement.
func (f Filter) sql() (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(f))
	for k := range f {
		if !fieldName.MatchString(k) {
			return "", nil, fmt.Errorf("invalid filter field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		v := f[k]
		if v == nil {
			clauses = append(clauses, "json_extract(doc, ?) IS NULL")
			args = append(args, "$."+k)
			continue
		}
		if b, ok := v.(bool); ok {
			// json_extract yields 1/0 for JSON booleans
			v = 0
			if b {
				v = 1
			}
		}
		clauses = append(clauses, "json_extract(doc, ?) = ?")
		args = append(args, "$."+k, v)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
