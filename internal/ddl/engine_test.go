// internal/ddl/engine_test.go
package ddl

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/nebula-connector/internal/core"
)

// fakeConn records what the engine sends and how often it closes.
type fakeConn struct {
	execErr  error
	closeErr error
	queries  []string
	closes   int
	panicMsg string
}

func (f *fakeConn) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.execErr != nil {
		return nil, f.execErr
	}
	return driverResult{}, nil
}

func (f *fakeConn) Close() error {
	f.closes++
	return f.closeErr
}

type driverResult struct{}

func (driverResult) LastInsertId() (int64, error) { return 0, nil }
func (driverResult) RowsAffected() (int64, error) { return 0, nil }

func TestCreateTableSuccess(t *testing.T) {
	conn := &fakeConn{}
	resp, err := NewEngine().CreateTable(context.Background(), empRequest(), conn)
	require.NoError(t, err)
	assert.Equal(t, "Table 'EMP' created successfully", resp.Response)
	assert.Equal(t, []string{"CREATE TABLE EMP (ID NUMBER PRIMARY KEY,NAME VARCHAR2(50))"}, conn.queries)
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableValidationFailureStillCloses(t *testing.T) {
	conn := &fakeConn{}
	req := empRequest()
	req.ColumnsList = []map[string]any{nil, {}}

	resp, err := NewEngine().CreateTable(context.Background(), req, conn)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, MsgInvalidColumnsList, err.Error())
	assert.Empty(t, conn.queries, "no SQL may be sent after a validation failure")
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableDuplicate(t *testing.T) {
	oraErr := errors.New("ORA-00955: name is already used by an existing object")
	conn := &fakeConn{execErr: oraErr}

	_, err := NewEngine().CreateTable(context.Background(), empRequest(), conn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateTable))
	assert.True(t, errors.Is(err, oraErr), "driver error must stay reachable")
	assert.False(t, errors.Is(err, ErrExecution))

	var dupErr *DuplicateTableError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "EMP", dupErr.Table)
	assert.Equal(t, "InvalidTableName : Table 'EMP' already exists in the database", err.Error())
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableExecutionError(t *testing.T) {
	oraErr := errors.New("ORA-00902: invalid datatype")
	conn := &fakeConn{execErr: oraErr}

	_, err := NewEngine().CreateTable(context.Background(), empRequest(), conn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecution))
	assert.True(t, errors.Is(err, oraErr))
	assert.Equal(t, "ORA-00902: invalid datatype", err.Error())
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableCloseFailureDoesNotOverrideResult(t *testing.T) {
	conn := &fakeConn{closeErr: errors.New("connection reset")}
	resp, err := NewEngine().CreateTable(context.Background(), empRequest(), conn)
	require.NoError(t, err)
	assert.Equal(t, "Table 'EMP' created successfully", resp.Response)

	conn = &fakeConn{closeErr: errors.New("connection reset"), execErr: errors.New("ORA-01031: insufficient privileges")}
	_, err = NewEngine().CreateTable(context.Background(), empRequest(), conn)
	assert.True(t, errors.Is(err, ErrExecution))
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableClosesOnPanic(t *testing.T) {
	conn := &fakeConn{panicMsg: "driver bug"}
	assert.Panics(t, func() {
		_, _ = NewEngine().CreateTable(context.Background(), empRequest(), conn)
	})
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableNilConnection(t *testing.T) {
	_, err := NewEngine().CreateTable(context.Background(), empRequest(), nil)
	assert.True(t, errors.Is(err, ErrExecution))
}

func TestCreateTableStrictPolicy(t *testing.T) {
	conn := &fakeConn{}
	req := empRequest()
	req.TableName = "EMP (X NUMBER); DROP TABLE DEPT; --"

	_, err := NewEngine(WithIdentifierPolicy(core.PolicyStrict)).CreateTable(context.Background(), req, conn)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Empty(t, conn.queries)
	assert.Equal(t, 1, conn.closes)
}

func TestCreateTableAgainstSQLite(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-request")
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "orcl.db"))
	require.NoError(t, err)
	defer db.Close()

	engine := NewEngine(WithDuplicateMarkers("already exists"))

	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	resp, err := engine.CreateTable(ctx, empRequest(), conn)
	require.NoError(t, err)
	assert.Equal(t, "Table 'EMP' created successfully", resp.Response)

	var name string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='EMP'`).Scan(&name))
	assert.Equal(t, "EMP", name)

	conn, err = db.Conn(ctx)
	require.NoError(t, err)
	_, err = engine.CreateTable(ctx, empRequest(), conn)
	require.Error(t, err)
	var dupErr *DuplicateTableError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "EMP", dupErr.Table)

	// conn was closed by the engine
	_, err = conn.ExecContext(ctx, "SELECT 1")
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
