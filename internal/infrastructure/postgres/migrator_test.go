package postgres

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id int)")},
		"002_orders.sql": {Data: []byte("CREATE TABLE b (id int)")},
		"README.md":      {Data: []byte("ignored")},
		"nover.sql":      {Data: []byte("ignored")},
	}
}

func TestMigrator_Load_OrdenaEIgnora(t *testing.T) {
	m := NewMigratorFS(nil, testMigrations())
	migs, err := m.Load()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "002_orders.sql", migs[1].Name)
}

func TestMigrator_EmbebidasIncluyenInit(t *testing.T) {
	migs, err := NewMigrator(nil).Load()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "001_init.sql", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE orders")
}

func TestMigrator_Up_AplicaSoloPendientes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS _migrations`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(`SELECT version, applied_at FROM _migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version", "applied_at"}).AddRow(1, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id int)")).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec(`INSERT INTO _migrations`).WithArgs(2, "002_orders.sql").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := NewMigratorFS(mock, testMigrations()).Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Status(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS _migrations`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(`SELECT version, applied_at FROM _migrations`).
		WillReturnRows(pgxmock.NewRows([]string{"version", "applied_at"}).AddRow(1, at))

	st, err := NewMigratorFS(mock, testMigrations()).Status(context.Background())
	require.NoError(t, err)
	require.Len(t, st, 2)
	assert.True(t, st[0].Applied)
	assert.Equal(t, at, *st[0].AppliedAt)
	assert.False(t, st[1].Applied)
	assert.Nil(t, st[1].AppliedAt)
}
