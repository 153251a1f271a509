package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/chronos/db"
	"github.com/teranos/chronos/errors"
	chronostest "github.com/teranos/chronos/internal/testing"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/vocab"
)

func scenarioTriples() []kb.Triple {
	return []kb.Triple{
		{Subject: "A", Predicate: vocab.RDFType, Object: vocab.ClassInterval},
		{Subject: "B", Predicate: vocab.RDFType, Object: vocab.ClassInterval},
		{Subject: "A", Predicate: vocab.IntervalBefore, Object: "B"},
		{Subject: "A", Predicate: vocab.IntervalContains, Object: "B"},
		{Subject: "t0", Predicate: vocab.InXSDDateTimeStamp, Literal: &kb.Literal{Value: "2024-01-01T00:00:00Z", Datatype: vocab.XSDDateTimeStamp}},
	}
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLStore(chronostest.CreateTestDB(t), zaptest.NewLogger(t).Sugar())

	n, err := store.Add(ctx, "facts.toml", scenarioTriples())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = store.Add(ctx, "facts.toml", scenarioTriples()[2:4])
	require.NoError(t, err)
	assert.Equal(t, 0, n, "re-importing existing triples adds nothing")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	g, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, scenarioTriples(), g.Triples())
	assert.Equal(t, []string{"A", "B"}, g.ClassMembers(vocab.ClassInterval))
	assert.Equal(t, []kb.Pair{{Subject: "A", Object: "B"}}, g.AssertionsOf(vocab.IntervalContains))
}

func TestSQLStoreLiteralAndResourceAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := NewSQLStore(chronostest.CreateTestDB(t), nil)

	n, err := store.Add(ctx, "", []kb.Triple{
		{Subject: "s", Predicate: "p", Object: "v"},
		{Subject: "s", Predicate: "p", Literal: &kb.Literal{Value: "v"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLStoreDeleteSource(t *testing.T) {
	ctx := context.Background()
	store := NewSQLStore(chronostest.CreateTestDB(t), nil)

	_, err := store.Add(ctx, "a.toml", scenarioTriples()[:2])
	require.NoError(t, err)
	_, err = store.Add(ctx, "b.toml", scenarioTriples()[2:])
	require.NoError(t, err)

	n, err := store.DeleteSource(ctx, "a.toml")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSQLStoreRejectsInvalidTriples(t *testing.T) {
	store := NewSQLStore(chronostest.CreateTestDB(t), nil)

	_, err := store.Add(context.Background(), "", []kb.Triple{{Subject: "s", Predicate: "p"}})
	require.Error(t, err)
	assert.True(t, errors.IsContractViolation(err))
}

func TestSQLStoreClosedDatabase(t *testing.T) {
	database := chronostest.CreateTestDB(t)
	store := NewSQLStore(database, nil)
	database.Close()

	_, err := store.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrDatabaseClosed))
}

func TestSQLStoreErrorPaths(t *testing.T) {
	ctx := context.Background()
	insert := regexp.QuoteMeta("INSERT OR IGNORE INTO triples")

	t.Run("begin fails", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin().WillReturnError(errors.New("locked"))

		_, err = NewSQLStore(mockDB, nil).Add(ctx, "", scenarioTriples())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin import")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		prep := mock.ExpectPrepare(insert)
		prep.ExpectExec().
			WithArgs("A", vocab.RDFType, vocab.ClassInterval, nil, "", "f").
			WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()

		_, err = NewSQLStore(mockDB, nil).Add(ctx, "f", scenarioTriples())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk I/O error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count fails", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectQuery(regexp.QuoteMeta(TripleCountQuery)).WillReturnError(errors.New("no such table: triples"))

		_, err = NewSQLStore(mockDB, nil).Count(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "count triples")
	})

	t.Run("scan fails on malformed row", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"subject", "predicate", "object", "literal_value", "literal_datatype"}).
			AddRow("A", vocab.IntervalMeets, "B", nil, "").
			AddRow("A", vocab.IntervalMeets, nil, nil, nil)
		mock.ExpectQuery("SELECT subject, predicate").WillReturnRows(rows)

		_, err = NewSQLStore(mockDB, nil).Snapshot(ctx)
		require.Error(t, err)
	})
}
