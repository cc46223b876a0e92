package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Table is the plain CRUD mapping shared by the marketplace tables: one
// auto-increment id column plus a list of value columns whose names match
// the db tags of T.
type Table[T any] struct {
	DB      *sqlx.DB
	Name    string
	IDCol   string
	Cols    []string
	Missing string // NotFound message
	SetID   func(*T, int64)

	// UpdateCols narrows the columns Update writes. Empty means Cols.
	UpdateCols []string
}

func (t *Table[T]) selectList() string {
	return t.IDCol + ", " + strings.Join(t.Cols, ", ")
}

func prefixed(cols []string, prefix string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + c
	}
	return strings.Join(out, ", ")
}

// Create inserts v and stores the new id through SetID.
func (t *Table[T]) Create(ctx context.Context, v *T) error {
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(t.Cols, ", "), prefixed(t.Cols, ":"))
	res, err := t.DB.NamedExecContext(ctx, q, v)
	if err != nil {
		return classify("insert "+t.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.SetID(v, id)
	return nil
}

func (t *Table[T]) Get(ctx context.Context, id int64) (*T, error) {
	var v T
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", t.selectList(), t.Name, t.IDCol)
	if err := t.DB.GetContext(ctx, &v, q, id); err != nil {
		return nil, notFound(err, t.Missing)
	}
	return &v, nil
}

// First returns the row with the lowest id.
func (t *Table[T]) First(ctx context.Context) (*T, error) {
	var v T
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT 1", t.selectList(), t.Name, t.IDCol)
	if err := t.DB.GetContext(ctx, &v, q); err != nil {
		return nil, notFound(err, t.Missing)
	}
	return &v, nil
}

func (t *Table[T]) List(ctx context.Context, skip, limit int) ([]T, error) {
	skip, limit = page(skip, limit)
	out := []T{}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT ? OFFSET ?", t.selectList(), t.Name, t.IDCol)
	err := t.DB.SelectContext(ctx, &out, q, limit, skip)
	return out, err
}

// Update writes the updatable columns of v, keyed by its id column.
func (t *Table[T]) Update(ctx context.Context, v *T) error {
	cols := t.UpdateCols
	if len(cols) == 0 {
		cols = t.Cols
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = :" + c
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = :%s",
		t.Name, strings.Join(sets, ", "), t.IDCol, t.IDCol)
	res, err := t.DB.NamedExecContext(ctx, q, v)
	if err != nil {
		return classify("update "+t.Name, err)
	}
	return requireRow(res, t.Missing)
}

func (t *Table[T]) Delete(ctx context.Context, id int64) (bool, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Name, t.IDCol)
	res, err := t.DB.ExecContext(ctx, q, id)
	if err != nil {
		return false, classify("delete "+t.Name, err)
	}
	return affected(res)
}
