// Package store defines the persistence contracts for users, categories and
// tasks. Services depend only on these interfaces; the SQL implementation
// lives in internal/platform/sqlstore.
//
// Implementations report failures with the sentinels in errors.go so that
// callers can tell a missing row, a unique or foreign key violation, and a
// lost optimistic-lock race apart with errors.Is.
package store
