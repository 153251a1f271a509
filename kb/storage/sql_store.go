// Package storage persists fact-graph triples in SQLite and hands out
// read-only kb.Graph snapshots for validation and resolution passes.
package storage

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/teranos/chronos/db"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/logger"
)

// Query constants
const (
	TripleInsertQuery = `
		INSERT OR IGNORE INTO triples (subject, predicate, object, literal_value, literal_datatype, source)
		VALUES (?, ?, ?, ?, ?, ?)`

	TripleSelectQuery = `
		SELECT subject, predicate, object, literal_value, literal_datatype
		FROM triples
		ORDER BY seq`

	TripleCountQuery = `SELECT COUNT(*) FROM triples`

	TripleDeleteSourceQuery = `DELETE FROM triples WHERE source = ?`
)

// SQLStore is a SQLite-backed triple store.
type SQLStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLStore creates a store over an already-migrated database.
func NewSQLStore(database *sql.DB, log *zap.SugaredLogger) *SQLStore {
	return &SQLStore{
		db:     database,
		logger: logger.OrNop(log).Named("storage"),
	}
}

// Add inserts triples tagged with source in one transaction and returns how
// many were new. Triples already present are skipped.
func (s *SQLStore) Add(ctx context.Context, source string, triples []kb.Triple) (int, error) {
	for i, t := range triples {
		if !t.Valid() {
			return 0, errors.NewInvalidRequestError("triple %d (%s, %s) is incomplete", i, t.Subject, t.Predicate)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, s.wrap(err, "begin import")
	}
	stmt, err := tx.PrepareContext(ctx, TripleInsertQuery)
	if err != nil {
		tx.Rollback()
		return 0, s.wrap(err, "prepare triple insert")
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range triples {
		var object, value sql.NullString
		datatype := ""
		if t.Literal != nil {
			value = sql.NullString{String: t.Literal.Value, Valid: true}
			datatype = t.Literal.Datatype
		} else {
			object = sql.NullString{String: t.Object, Valid: true}
		}

		res, err := stmt.ExecContext(ctx, t.Subject, t.Predicate, object, value, datatype, source)
		if err != nil {
			tx.Rollback()
			return 0, s.wrap(err, "insert triple (%s, %s)", t.Subject, t.Predicate)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, s.wrap(err, "commit import")
	}

	s.logger.Infow("Imported triples",
		logger.FieldCount, inserted,
		"submitted", len(triples),
		"source", source,
	)
	return inserted, nil
}

// Snapshot loads every stored triple, in insertion order, into a new kb.Graph.
func (s *SQLStore) Snapshot(ctx context.Context) (*kb.Graph, error) {
	rows, err := s.db.QueryContext(ctx, TripleSelectQuery)
	if err != nil {
		return nil, s.wrap(err, "query triples")
	}
	defer rows.Close()

	g := kb.NewGraph()
	for rows.Next() {
		var (
			t        kb.Triple
			object   sql.NullString
			value    sql.NullString
			datatype string
		)
		if err := rows.Scan(&t.Subject, &t.Predicate, &object, &value, &datatype); err != nil {
			return nil, s.wrap(err, "scan triple")
		}
		if value.Valid {
			t.Literal = &kb.Literal{Value: value.String, Datatype: datatype}
		} else {
			t.Object = object.String
		}
		if _, err := g.Add(t); err != nil {
			return nil, errors.Wrap(err, "stored triple")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(err, "iterate triples")
	}

	s.logger.Debugw("Snapshot loaded", logger.FieldCount, g.Len())
	return g, nil
}

// Count returns the number of stored triples.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, TripleCountQuery).Scan(&n); err != nil {
		return 0, s.wrap(err, "count triples")
	}
	return n, nil
}

// DeleteSource removes every triple imported under source.
func (s *SQLStore) DeleteSource(ctx context.Context, source string) (int, error) {
	res, err := s.db.ExecContext(ctx, TripleDeleteSourceQuery, source)
	if err != nil {
		return 0, s.wrap(err, "delete source %s", source)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, s.wrap(err, "delete source %s", source)
	}
	return int(n), nil
}

func (s *SQLStore) wrap(err error, format string, args ...interface{}) error {
	if db.IsDatabaseClosed(err) {
		err = errors.Wrap(db.ErrDatabaseClosed, err.Error())
	}
	return errors.Wrapf(err, format, args...)
}
