// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces. All implementations accept a store.DBTX so they can
// operate on either a database connection or a transaction.
package postgres
