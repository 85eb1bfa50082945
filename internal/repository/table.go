package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// table holds the statements for one level of the hierarchy. The four
// levels only differ by table name and parent column.
type table[T any] struct {
	name   string
	parent string
	args   func(*T) []any

	selectAll    string
	selectByID   string
	selectParent string
	insert       string
	update       string
	delete       string
}

func newTable[T any](name, parent string, args func(*T) []any) table[T] {
	cols := []string{"code", "name"}
	if parent != "" {
		cols = append(cols, parent)
	}
	sets := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
		marks[i] = "?"
	}
	selectCols := "SELECT id, " + strings.Join(cols, ", ") + " FROM " + name

	t := table[T]{
		name:       name,
		parent:     parent,
		args:       args,
		selectAll:  selectCols,
		selectByID: selectCols + " WHERE id = ?",
		insert: "INSERT INTO " + name + " (" + strings.Join(cols, ", ") + ") VALUES (" +
			strings.Join(marks, ", ") + ") RETURNING id",
		update: "UPDATE " + name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?",
		delete: "DELETE FROM " + name + " WHERE id = ?",
	}
	if parent != "" {
		t.selectParent = selectCols + " WHERE " + parent + " = ?"
	}
	return t
}

func (t table[T]) list(ctx context.Context, db *sqlx.DB) ([]T, error) {
	rows := []T{}
	if err := db.SelectContext(ctx, &rows, db.Rebind(t.selectAll)); err != nil {
		return nil, storageErr("list "+t.name, err)
	}
	return rows, nil
}

func (t table[T]) listByParent(ctx context.Context, db *sqlx.DB, parentID int64) ([]T, error) {
	rows := []T{}
	if err := db.SelectContext(ctx, &rows, db.Rebind(t.selectParent), parentID); err != nil {
		return nil, storageErr("list "+t.name+" by "+t.parent, err)
	}
	return rows, nil
}

// get returns nil without an error when no row has the given id.
func (t table[T]) get(ctx context.Context, db *sqlx.DB, id int64) (*T, error) {
	var v T
	err := db.GetContext(ctx, &v, db.Rebind(t.selectByID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get "+t.name, err)
	}
	return &v, nil
}

func (t table[T]) create(ctx context.Context, db *sqlx.DB, v *T) (int64, error) {
	var id int64
	if err := db.QueryRowxContext(ctx, db.Rebind(t.insert), t.args(v)...).Scan(&id); err != nil {
		return 0, storageErr("create "+t.name, err)
	}
	return id, nil
}

func (t table[T]) updateByID(ctx context.Context, db *sqlx.DB, id int64, v *T) error {
	args := append(t.args(v), id)
	res, err := db.ExecContext(ctx, db.Rebind(t.update), args...)
	if err != nil {
		return storageErr("update "+t.name, err)
	}
	return requireAffected(res, "update "+t.name)
}

func (t table[T]) deleteByID(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, db.Rebind(t.delete), id)
	if err != nil {
		return storageErr("delete "+t.name, err)
	}
	return requireAffected(res, "delete "+t.name)
}

// requireAffected turns a statement that matched nothing into ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
