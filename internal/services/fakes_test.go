package services

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeCommandTag struct {
	rowsAffected int64
}

func (t fakeCommandTag) RowsAffected() int64 { return t.rowsAffected }

type fakeDB struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if f.ExecFunc == nil {
		return fakeCommandTag{}, nil
	}
	return f.ExecFunc(ctx, sql, args...)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc == nil {
		return &fakeRows{}, nil
	}
	return f.QueryFunc(ctx, sql, args...)
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc == nil {
		return fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
	}
	return f.QueryRowFunc(ctx, sql, args...)
}

type fakeRow struct {
	scanFunc func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scanFunc(dest...) }

func rowFromValues(values ...any) Row {
	return fakeRow{scanFunc: func(dest ...any) error { return assign(dest, values) }}
}

type fakeRows struct {
	rows   [][]any
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(dest, r.rows[r.idx-1]) }
func (r *fakeRows) Close()                 { r.closed = true }
func (r *fakeRows) Err() error             { return r.err }

// assign copies values into scan destinations the way pgx would for matching types.
func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan: cannot assign %s to %s", v.Type(), target.Type())
		}
		target.Set(v)
	}
	return nil
}

// memoryIdeaDB interprets the statements IdeaService issues against an in-memory table.
type memoryIdeaDB struct {
	mu    sync.Mutex
	rows  []memoryIdeaRow
	clock time.Time
}

type memoryIdeaRow struct {
	values    []any // in ideaColumns order
	id        uuid.UUID
	userID    uuid.UUID
	createdAt time.Time
}

func newMemoryIdeaDB() *memoryIdeaDB {
	return &memoryIdeaDB{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memoryIdeaDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !strings.HasPrefix(strings.TrimSpace(sql), "DELETE FROM startup_ideas") {
		return nil, fmt.Errorf("unexpected exec: %s", sql)
	}
	id, userID := args[0].(uuid.UUID), args[1].(uuid.UUID)
	kept := m.rows[:0]
	var removed int64
	for _, r := range m.rows {
		if r.id == id && r.userID == userID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return fakeCommandTag{rowsAffected: removed}, nil
}

func (m *memoryIdeaDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID := args[0].(uuid.UUID)
	var matched []memoryIdeaRow
	for _, r := range m.rows {
		if r.userID == userID {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].createdAt.After(matched[j].createdAt) })
	out := &fakeRows{}
	for _, r := range matched {
		out.rows = append(out.rows, r.values)
	}
	return out, nil
}

func (m *memoryIdeaDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	trimmed := strings.TrimSpace(sql)
	if strings.HasPrefix(trimmed, "INSERT INTO startup_ideas") {
		m.clock = m.clock.Add(time.Minute)
		row := memoryIdeaRow{id: uuid.New(), userID: args[0].(uuid.UUID), createdAt: m.clock}
		row.values = []any{row.id, row.userID, args[1], args[2], args[3], args[4], args[5], args[6], args[7], row.createdAt}
		m.rows = append(m.rows, row)
		return rowFromValues(row.id, row.createdAt)
	}
	id, userID := args[0].(uuid.UUID), args[1].(uuid.UUID)
	for _, r := range m.rows {
		if r.id == id && r.userID == userID {
			return rowFromValues(r.values...)
		}
	}
	return fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
}
