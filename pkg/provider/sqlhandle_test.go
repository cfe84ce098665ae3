package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLHandleOpenAndClose(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("sqlhandle_open_close",
		sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectClose()

	h := NewSQLHandle("sqlmock")
	h.SetConnectionText("sqlhandle_open_close")

	require.NoError(t, h.Open(context.Background()))
	require.NotNil(t, h.DB())

	require.NoError(t, h.Close())
	assert.Nil(t, h.DB())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLHandlePingFailure(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("sqlhandle_ping_failure",
		sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	h := NewSQLHandle("sqlmock")
	h.SetConnectionText("sqlhandle_ping_failure")

	err = h.Open(context.Background())
	require.Error(t, err)
	assert.Nil(t, h.DB(), "failed open must not leave a database behind")
}

func TestSQLHandleUnknownDriver(t *testing.T) {
	h := NewSQLHandle("no_such_driver")
	h.SetConnectionText("dsn")

	err := h.Open(context.Background())
	require.Error(t, err)
}

func TestSQLHandleCloseBeforeOpen(t *testing.T) {
	h := NewSQLHandle("sqlmock")
	require.NoError(t, h.Close())
}
