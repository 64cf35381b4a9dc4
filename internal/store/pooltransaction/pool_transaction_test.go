package pooltransaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/utils/tests"
)

// statementRecorder keeps the last built query statement so tests can assert
// the generated SQL without a live database.
type statementRecorder struct {
	stmt *gorm.Statement
}

func newDryRunDB(t *testing.T) (*gorm.DB, *statementRecorder) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	recorder := &statementRecorder{}
	err = db.Callback().Query().After("gorm:query").Register("record_statement", func(tx *gorm.DB) {
		recorder.stmt = tx.Statement
	})
	require.NoError(t, err)

	return db, recorder
}

func limitClauseOf(t *testing.T, stmt *gorm.Statement) clause.Limit {
	limit, ok := stmt.Clauses["LIMIT"].Expression.(clause.Limit)
	require.True(t, ok, "query carries no LIMIT clause")
	return limit
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
		want       int
	}{
		{name: "first page", pageNumber: 1, pageSize: 2, want: 0},
		{name: "second page", pageNumber: 2, pageSize: 2, want: 2},
		{name: "default live page size", pageNumber: 3, pageSize: 50, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageOffset(tt.pageNumber, tt.pageSize))
		})
	}
}

func TestListQueryShape(t *testing.T) {
	t.Run("first page skips nothing", func(t *testing.T) {
		db, recorder := newDryRunDB(t)

		_, err := New().List(db, "WETH-USDC", 1, 2)
		require.NoError(t, err)
		require.NotNil(t, recorder.stmt)

		limit := limitClauseOf(t, recorder.stmt)
		require.NotNil(t, limit.Limit)
		assert.Equal(t, 2, *limit.Limit)
		assert.Equal(t, 0, limit.Offset)
	})

	t.Run("later pages skip preceding rows", func(t *testing.T) {
		db, recorder := newDryRunDB(t)

		_, err := New().List(db, "WETH-USDC", 2, 2)
		require.NoError(t, err)
		require.NotNil(t, recorder.stmt)

		limit := limitClauseOf(t, recorder.stmt)
		require.NotNil(t, limit.Limit)
		assert.Equal(t, 2, *limit.Limit)
		assert.Equal(t, 2, limit.Offset)
	})

	t.Run("filters by pool newest-first", func(t *testing.T) {
		db, recorder := newDryRunDB(t)

		_, err := New().List(db, "WETH-USDC", 1, 50)
		require.NoError(t, err)
		require.NotNil(t, recorder.stmt)

		sql := recorder.stmt.SQL.String()
		assert.Contains(t, sql, "pool = ?")
		assert.Contains(t, sql, "ORDER BY timestamp desc")
		assert.Contains(t, recorder.stmt.Vars, "WETH-USDC")
	})
}

func TestMostRecentTimestampQueryShape(t *testing.T) {
	db, recorder := newDryRunDB(t)

	_, err := New().MostRecentTimestamp(db, "WETH-USDC")
	require.NoError(t, err)
	require.NotNil(t, recorder.stmt)

	sql := recorder.stmt.SQL.String()
	assert.Contains(t, sql, "pool = ?")
	assert.Contains(t, sql, "ORDER BY timestamp desc")
	assert.Contains(t, recorder.stmt.Vars, "WETH-USDC")

	limit := limitClauseOf(t, recorder.stmt)
	require.NotNil(t, limit.Limit)
	assert.Equal(t, 1, *limit.Limit)
}
