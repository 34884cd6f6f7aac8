// internal/ddl/engine.go
package ddl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Annany2002/nebula-connector/internal/core"
	"github.com/Annany2002/nebula-connector/internal/logger"
)

// OracleDuplicateMarker is the ORA-00955 text for an already used object name.
const OracleDuplicateMarker = "name is already used by an existing object"

var customLog = logger.NewLogger()

// Conn is an open, exclusively owned connection. *sql.Conn and *sql.DB both satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// Response wraps the human readable outcome.
type Response struct {
	Response string `json:"response"`
}

type requestIDKey struct{}

// WithRequestID attaches a request id that the engine adds to its log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Engine turns table creation requests into a single CREATE TABLE and runs it.
// It keeps no per-request state and is safe for concurrent use.
type Engine struct {
	markers []string
	policy  core.IdentifierPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithDuplicateMarkers adds message fragments that identify an existing table,
// on top of the Oracle marker.
func WithDuplicateMarkers(markers ...string) Option {
	return func(e *Engine) {
		for _, m := range markers {
			if strings.TrimSpace(m) != "" {
				e.markers = append(e.markers, m)
			}
		}
	}
}

// WithIdentifierPolicy selects how table and column names are checked.
func WithIdentifierPolicy(p core.IdentifierPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine returns an engine using the verbatim identifier policy unless told otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		markers: []string{OracleDuplicateMarker},
		policy:  core.PolicyVerbatim,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateTable validates req, synthesizes the statement, executes it on conn
// and closes conn exactly once on every path. A close failure is only logged.
func (e *Engine) CreateTable(ctx context.Context, req Request, conn Conn) (resp *Response, err error) {
	log := customLog.WithFields(logrus.Fields{
		"request_id": requestID(ctx),
		"table":      req.TableName,
	})
	if conn != nil {
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				log.Warnf("Engine: Error while closing the database connection: %v", cerr)
			}
		}()
	}

	query, err := BuildCreateTable(req, e.policy)
	if err != nil {
		log.Errorf("Engine: %v", err)
		return nil, err
	}
	log.Printf("Engine: Create Table Query: %s", query)

	if conn == nil {
		return nil, &ExecutionError{Err: errors.New("no database connection supplied")}
	}
	if err := e.execute(ctx, conn, query, req.TableName); err != nil {
		log.Errorf("Engine: %v", err)
		return nil, err
	}

	resp = &Response{Response: fmt.Sprintf("Table '%s' created successfully", req.TableName)}
	log.Printf("Engine: CreateTableQueryStatus: %s", resp.Response)
	return resp, nil
}

func (e *Engine) execute(ctx context.Context, conn Conn, query, tableName string) error {
	if _, err := conn.ExecContext(ctx, query); err != nil {
		if e.isDuplicate(err) {
			return &DuplicateTableError{Table: tableName, Err: err}
		}
		return &ExecutionError{Err: err}
	}
	return nil
}

func (e *Engine) isDuplicate(err error) bool {
	msg := err.Error()
	for _, m := range e.markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
