// Package store defines the data-access contracts of the application: the
// connection pool, the transaction scope every statement runs in, the error
// taxonomy returned by repositories, and the repository interfaces the HTTP
// layer depends on. Concrete PostgreSQL repositories live in
// internal/platform/postgres.
package store
