package vogon

import (
	"context"

	"github.com/shubhiks/vogon-go/dialect"
)

// executeFunc runs one query to completion. It exists so cursor tests can
// substitute a double for the remote service.
type executeFunc func(ctx context.Context, query string) (*ResultSet, error)

// Connection mirrors a database-cursor connection over the Vogon service.
// It is a session factory: each query runs on its own job client, and no
// state is shared between queries, so a Connection needs no locking.
type Connection struct {
	cfg     *Config
	closed  bool
	cursors []*Cursor
	execute executeFunc
}

// Connect validates the configuration and returns a Connection.
func Connect(cfg *Config) (*Connection, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Connection{
		cfg:     client.cfg,
		execute: client.ExecuteSync,
	}, nil
}

func (c *Connection) requireOpen() error {
	if c.closed {
		return ErrClosed("connection already closed")
	}
	return nil
}

// Cursor returns a new cursor over this connection.
func (c *Connection) Cursor() (*Cursor, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	cursor := &Cursor{execute: c.execute, Arraysize: 1}
	c.cursors = append(c.cursors, cursor)
	return cursor, nil
}

// Execute creates a cursor, runs the operation on it, and returns it.
func (c *Connection) Execute(ctx context.Context, operation string, parameters map[string]interface{}) (*Cursor, error) {
	cursor, err := c.Cursor()
	if err != nil {
		return nil, err
	}
	if err := cursor.Execute(ctx, operation, parameters); err != nil {
		return nil, err
	}
	return cursor, nil
}

// Commit is a no-op: the service is read-only and stateless per query.
func (c *Connection) Commit() error {
	return c.requireOpen()
}

// Close closes the connection and all cursors created from it.
func (c *Connection) Close() error {
	if err := c.requireOpen(); err != nil {
		return err
	}
	c.closed = true
	for _, cursor := range c.cursors {
		// Already-closed cursors are fine.
		_ = cursor.Close()
	}
	return nil
}

// SchemaNames returns the service's fixed schema catalog.
func (c *Connection) SchemaNames() ([]string, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	return dialect.SchemaNames(), nil
}

// TableNames returns the service's fixed table catalog.
func (c *Connection) TableNames() ([]string, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	return dialect.TableNames(), nil
}

// Columns returns column metadata for a known service table.
func (c *Connection) Columns(table string) ([]dialect.ColumnInfo, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	return dialect.Columns(table), nil
}
