package vogon

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
)

func init() {
	sql.Register("vogon", &Driver{})
}

// Driver implements database/sql/driver.Driver over the Vogon service.
type Driver struct{}

var (
	_ driver.Driver        = (*Driver)(nil)
	_ driver.DriverContext = (*Driver)(nil)
)

// Open opens a connection for the given DSN. See ParseDSN for the format.
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector parses the DSN once and returns a reusable connector.
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return &Connector{cfg: cfg, driver: d}, nil
}

// Connector implements driver.Connector for use with sql.OpenDB.
type Connector struct {
	cfg    *Config
	driver *Driver
}

// Connect returns a new driver connection.
func (c *Connector) Connect(context.Context) (driver.Conn, error) {
	conn, err := Connect(c.cfg)
	if err != nil {
		return nil, err
	}
	return &driverConn{conn: conn}, nil
}

// Driver returns the underlying Driver.
func (c *Connector) Driver() driver.Driver { return c.driver }

type driverConn struct {
	conn *Connection
}

var (
	_ driver.Conn           = (*driverConn)(nil)
	_ driver.QueryerContext = (*driverConn)(nil)
)

func (c *driverConn) Prepare(query string) (driver.Stmt, error) {
	if err := c.conn.requireOpen(); err != nil {
		return nil, err
	}
	return &driverStmt{conn: c, query: query}, nil
}

func (c *driverConn) Close() error {
	return c.conn.Close()
}

// Begin is unsupported: the service is read-only and stateless per query.
func (c *driverConn) Begin() (driver.Tx, error) {
	return nil, ErrNotSupported("transactions are not supported")
}

func (c *driverConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	parameters, err := namedParameters(args)
	if err != nil {
		return nil, err
	}

	cursor, err := c.conn.Execute(ctx, query, parameters)
	if err != nil {
		return nil, err
	}
	defer cursor.Close() //nolint:errcheck

	description, err := cursor.Description()
	if err != nil {
		return nil, err
	}
	rows, err := cursor.FetchAll()
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(description))
	for i, col := range description {
		columns[i] = col.Name
	}
	return &driverRows{columns: columns, rows: rows}, nil
}

// namedParameters converts driver args into the %(key)s parameter map.
// Positional placeholders have no service-side equivalent.
func namedParameters(args []driver.NamedValue) (map[string]interface{}, error) {
	if len(args) == 0 {
		return nil, nil
	}
	parameters := make(map[string]interface{}, len(args))
	for _, arg := range args {
		if arg.Name == "" {
			return nil, ErrNotSupported("the vogon driver requires named parameters, use sql.Named")
		}
		parameters[arg.Name] = arg.Value
	}
	return parameters, nil
}

type driverStmt struct {
	conn   *driverConn
	query  string
	closed bool
}

var (
	_ driver.Stmt             = (*driverStmt)(nil)
	_ driver.StmtQueryContext = (*driverStmt)(nil)
)

func (s *driverStmt) Close() error {
	if s.closed {
		return ErrClosed("statement already closed")
	}
	s.closed = true
	return nil
}

func (s *driverStmt) NumInput() int { return -1 }

// Exec is unsupported: the service accepts read queries only.
func (s *driverStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, ErrNotSupported("Exec is not supported, the service is read-only")
}

func (s *driverStmt) Query(args []driver.Value) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, ErrNotSupported("the vogon driver requires named parameters, use sql.Named")
	}
	return s.QueryContext(context.Background(), nil)
}

func (s *driverStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if s.closed {
		return nil, ErrClosed("statement already closed")
	}
	return s.conn.QueryContext(ctx, s.query, args)
}

type driverRows struct {
	columns []string
	rows    [][]interface{}
	pos     int
}

var _ driver.Rows = (*driverRows)(nil)

func (r *driverRows) Columns() []string { return r.columns }

func (r *driverRows) Close() error {
	r.pos = len(r.rows)
	return nil
}

func (r *driverRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	return nil
}
