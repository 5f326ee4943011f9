// Package postgres provides PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so they can run against either a
// connection pool or a transaction; callers bind them to a transaction with
// WithTx when an operation needs atomicity across stores.
package postgres
