// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It opens the pgx connection pool, runs every statement inside a
// store.RunInTransaction scope, and translates driver errors into the store
// error kinds by SQLSTATE code.
package postgres
