// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores share the store.DBTX abstraction so they work
// against both *sql.DB and *sql.Tx, and map driver-level constraint
// violations to the sentinel errors defined in the store package.
package postgres
