// Package sqlstore implements the store interfaces with jmoiron/sqlx over
// two database/sql drivers: jackc/pgx for Postgres and modernc.org/sqlite for
// embedded use and tests. Queries are written with ? placeholders and
// rebound for the active driver; driver errors are mapped onto the store
// sentinels. Schema migrations for both dialects are embedded and applied
// with goose.
package sqlstore
