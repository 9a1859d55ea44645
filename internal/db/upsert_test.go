package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpsert_EmptyRows(t *testing.T) {
	n, err := BulkUpsert(context.TODO(), nil, UpsertConfig{Table: "t"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsert_Validation(t *testing.T) {
	rows := [][]any{{1}}

	_, err := BulkUpsert(context.TODO(), nil, UpsertConfig{Table: "t", ConflictKeys: []string{"k"}}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns")

	_, err = BulkUpsert(context.TODO(), nil, UpsertConfig{Table: "t", Columns: []string{"k"}}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys")
}

func TestBulkUpsert_Success(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_tmp_upsert_reference_points" \(LIKE "reference_points" INCLUDING DEFAULTS\)`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_reference_points"}, []string{"kind", "name", "lat"}).
		WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "reference_points" .* ON CONFLICT \("kind", "name"\) DO UPDATE SET "lat" = EXCLUDED."lat"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	cfg := UpsertConfig{
		Table:        "reference_points",
		Columns:      []string{"kind", "name", "lat"},
		ConflictKeys: []string{"kind", "name"},
	}
	rows := [][]any{
		{"airport", "Corfu International", 39.6019},
		{"airport", "Athens International", 37.9364},
	}

	n, err := BulkUpsert(context.Background(), mock, cfg, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_RollsBackOnInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_t"}, []string{"k", "v"}).WillReturnResult(1)
	mock.ExpectExec(`INSERT INTO "t"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	cfg := UpsertConfig{Table: "t", Columns: []string{"k", "v"}, ConflictKeys: []string{"k"}}
	_, err = BulkUpsert(context.Background(), mock, cfg, [][]any{{"a", 1}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_QuotesIdentifiers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	// Schema qualification splits into two quoted identifiers; a hostile
	// column name ends up inside quotes with its own quote doubled.
	mock.ExpectExec(`CREATE TEMP TABLE "_tmp_upsert_app_points" \(LIKE "app"\."points" INCLUDING DEFAULTS\)`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_app_points"}, []string{"k", `v"; drop table points; --`}).
		WillReturnResult(1)
	mock.ExpectExec(`INSERT INTO "app"\."points" \("k", "v""; drop table points; --"\)`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	cfg := UpsertConfig{
		Table:        "app.points",
		Columns:      []string{"k", `v"; drop table points; --`},
		ConflictKeys: []string{"k"},
	}
	_, err = BulkUpsert(context.Background(), mock, cfg, [][]any{{"a", 1}})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
