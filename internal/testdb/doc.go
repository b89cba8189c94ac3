// Package testdb opens migrated databases for tests: a private in-memory
// SQLite database per test, and the Postgres database named by DATABASE_URL
// when one is available.
package testdb
