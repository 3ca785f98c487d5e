// Package vogon is a client shim for the Vogon asynchronous SQL execution
// service. It drives the full lifecycle of one remote query — submission,
// polling, result retrieval, cancellation — behind a synchronous cursor
// interface, and registers a database/sql driver under the name "vogon".
//
// Direct usage:
//
//	cfg, _ := vogon.LoadFromEnv()
//	conn, err := vogon.Connect(cfg)
//	cursor, err := conn.Execute(ctx, "SELECT customer_id, net_bid FROM cm.rts_customer_stats WHERE ts = %(ts)s",
//		map[string]interface{}{"ts": "2021071600"})
//	rows, err := cursor.FetchAll()
//
// database/sql usage:
//
//	db, err := sql.Open("vogon", "vogon://vogon.reports.mn:9090?token=...")
//	rows, err := db.QueryContext(ctx, "SELECT 1")
//
// Each query occupies the calling goroutine for the lifetime of the remote
// job, sleeping between status polls. There is no transaction support and
// no pagination beyond the configured MaxRows bound.
package vogon
