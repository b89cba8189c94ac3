package store

import "github.com/jmoiron/sqlx"

// DBTX is implemented by both *sqlx.DB and *sqlx.Tx, so a store can run
// against a connection pool or inside a caller-managed transaction.
type DBTX interface {
	sqlx.ExtContext
}
