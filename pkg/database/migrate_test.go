package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version, dirty FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(1, false))

	version, dirty, err := SchemaVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.False(t, dirty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaVersion_NeverMigrated(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version, dirty FROM schema_migrations").WillReturnError(sql.ErrNoRows)

	version, dirty, err := SchemaVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestSchemaVersion_Dirty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version, dirty FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(1, true))

	_, dirty, err := SchemaVersion(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestSchemaVersion_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version, dirty FROM schema_migrations").WillReturnError(errors.New("connection refused"))

	_, _, err = SchemaVersion(context.Background(), db)
	assert.ErrorContains(t, err, "connection refused")
}

func TestNewPgxPool_EmptyURL(t *testing.T) {
	_, err := NewPgxPool(context.Background(), "", false)
	assert.EqualError(t, err, "database URL cannot be empty")
}
