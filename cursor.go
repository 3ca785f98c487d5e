package vogon

import "context"

// Cursor exposes a standard database-cursor contract over pre-materialized
// rows: Execute runs one remote job to completion, after which FetchOne,
// FetchMany, and FetchAll operate without further network I/O.
type Cursor struct {
	// Arraysize is the default row count for FetchMany. Defaults to 1.
	Arraysize int

	execute     executeFunc
	closed      bool
	executed    bool
	description []Column
	rows        [][]interface{}
	pos         int
}

func (c *Cursor) requireOpen() error {
	if c.closed {
		return ErrClosed("cursor already closed")
	}
	return nil
}

func (c *Cursor) requireExecuted() error {
	if !c.executed {
		return ErrNotExecuted("called before Execute")
	}
	return nil
}

// Execute applies placeholder substitution and quote normalization to the
// operation, runs it to completion on the service, and materializes the
// result rows. A nil result (job failure with RaiseOnError disabled)
// leaves the cursor executed with zero rows.
func (c *Cursor) Execute(ctx context.Context, operation string, parameters map[string]interface{}) error {
	if err := c.requireOpen(); err != nil {
		return err
	}

	query, err := ApplyParameters(operation, parameters)
	if err != nil {
		return err
	}
	query = ReplaceQuotes(query)

	rs, err := c.execute(ctx, query)
	if err != nil {
		return err
	}

	c.executed = true
	c.pos = 0
	if rs == nil {
		c.description = nil
		c.rows = [][]interface{}{}
		return nil
	}
	c.description = rs.Columns
	c.rows = rs.Rows
	return nil
}

// ExecuteMany is not supported by the service; use Execute instead.
func (c *Cursor) ExecuteMany(ctx context.Context, operation string, parameterSeq []map[string]interface{}) error {
	if err := c.requireOpen(); err != nil {
		return err
	}
	return ErrNotSupported("ExecuteMany is not supported, use Execute instead")
}

// FetchOne returns the next row, or nil when the result set is exhausted.
func (c *Cursor) FetchOne() ([]interface{}, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	if err := c.requireExecuted(); err != nil {
		return nil, err
	}
	if c.pos >= len(c.rows) {
		return nil, nil
	}
	row := c.rows[c.pos]
	c.pos++
	return row, nil
}

// FetchMany returns up to size rows. A non-positive size falls back to
// Arraysize. An empty slice means no rows remain.
func (c *Cursor) FetchMany(size int) ([][]interface{}, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	if err := c.requireExecuted(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = c.Arraysize
	}
	if size <= 0 {
		size = 1
	}
	end := c.pos + size
	if end > len(c.rows) {
		end = len(c.rows)
	}
	out := c.rows[c.pos:end]
	c.pos = end
	return out, nil
}

// FetchAll returns all remaining rows.
func (c *Cursor) FetchAll() ([][]interface{}, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	if err := c.requireExecuted(); err != nil {
		return nil, err
	}
	out := c.rows[c.pos:]
	c.pos = len(c.rows)
	return out, nil
}

// Description returns the column description derived from the first result
// row, or nil for an empty result set.
func (c *Cursor) Description() ([]Column, error) {
	if err := c.requireOpen(); err != nil {
		return nil, err
	}
	if err := c.requireExecuted(); err != nil {
		return nil, err
	}
	return c.description, nil
}

// RowCount returns the number of rows not yet consumed.
func (c *Cursor) RowCount() (int, error) {
	if err := c.requireOpen(); err != nil {
		return 0, err
	}
	if err := c.requireExecuted(); err != nil {
		return 0, err
	}
	return len(c.rows) - c.pos, nil
}

// Close closes the cursor.
func (c *Cursor) Close() error {
	if err := c.requireOpen(); err != nil {
		return err
	}
	c.closed = true
	return nil
}
