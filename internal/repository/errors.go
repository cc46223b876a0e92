// Package repository holds the SQL for every table. Repositories translate
// driver errors into apperr kinds so that services and handlers never look at
// database/sql or MySQL error values directly.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// DefaultListLimit caps list queries that do not take an explicit limit.
const DefaultListLimit = 100

// notFound maps sql.ErrNoRows to a NotFound error carrying msg.
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}

// classify turns constraint violations into domain errors and wraps
// everything else with op.
func classify(op string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced:
			return apperr.Conflict(me.Message)
		case mysqlNoReferencedRow:
			return apperr.InvalidReference(me.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected reports whether the statement touched at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// page normalizes skip/limit pairs coming from query strings.
func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return skip, limit
}

// requireRow returns NotFound(msg) when res touched no row.
func requireRow(res sql.Result, msg string) error {
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(msg)
	}
	return nil
}
