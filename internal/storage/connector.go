// internal/storage/connector.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Driver registration
	_ "github.com/sijms/go-ora/v2"  // Driver registration ("oracle")

	"github.com/Annany2002/nebula-connector/internal/connection"
	"github.com/Annany2002/nebula-connector/internal/logger"
)

// Supported drivers.
const (
	DriverOracle = "oracle"
	DriverSQLite = "sqlite3"
)

var (
	ErrConnect           = errors.New("failed to connect to database")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	customLog            = logger.NewLogger()
)

// DuplicateMarkers returns the extra "table exists" message fragments a driver
// reports, beyond the Oracle one the engine always checks.
func DuplicateMarkers(driver string) []string {
	if driver == DriverSQLite {
		return []string{"already exists"}
	}
	return nil
}

// Conn is one exclusively owned connection. Closing it also closes the pool
// it was taken from.
type Conn struct {
	*sql.Conn
	pool *sql.DB
}

// Close returns the connection and shuts the pool down.
func (c *Conn) Close() error {
	connErr := c.Conn.Close()
	poolErr := c.pool.Close()
	return errors.Join(connErr, poolErr)
}

// Open connects to databaseName using the descriptor and returns a single
// connection for the caller to use and close. For sqlite3 the databaseName
// is the database file path and the descriptor is ignored.
func Open(ctx context.Context, driver string, d connection.Descriptor, databaseName string) (*Conn, error) {
	dsn, err := dataSourceName(driver, d, databaseName)
	if err != nil {
		return nil, err
	}

	customLog.Printf("Storage: Opening %s connection to %s", driver, target(driver, d, databaseName))
	pool, err := sql.Open(driver, dsn)
	if err != nil {
		customLog.Warnf("Storage: Failed to open %s database: %v", driver, err)
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	// Ping to verify connection
	if err = pool.PingContext(ctx); err != nil {
		pool.Close()
		customLog.Warnf("Storage: Failed to ping %s database: %v", driver, err)
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	conn, err := pool.Conn(ctx)
	if err != nil {
		pool.Close()
		customLog.Warnf("Storage: Failed to acquire %s connection: %v", driver, err)
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return &Conn{Conn: conn, pool: pool}, nil
}

func dataSourceName(driver string, d connection.Descriptor, databaseName string) (string, error) {
	switch driver {
	case DriverOracle:
		if err := d.Validate(); err != nil {
			return "", err
		}
		return d.DSN(databaseName)
	case DriverSQLite:
		if dir := filepath.Dir(databaseName); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return "", fmt.Errorf("%w: %v", ErrConnect, err)
			}
		}
		return databaseName + "?_foreign_keys=on&_busy_timeout=5000", nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnsupportedDriver, driver)
}

// target describes the endpoint for logs without credentials.
func target(driver string, d connection.Descriptor, databaseName string) string {
	if driver == DriverOracle {
		return d.Endpoint(databaseName)
	}
	return databaseName
}
