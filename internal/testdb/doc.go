//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database.
//
// Tests opt in with the integration build tag and a DATABASE_URL (or
// ONBOARD_TEST_DB_URL) pointing at a disposable database. GetTestPool opens a
// store.Pool on it and applies the embedded goose migrations once per process.
//
// Two isolation styles are supported:
//
//   - WithTx hands the test a transaction that is always rolled back, for
//     repositories bound with WithTx.
//   - ResetTables truncates every table, for tests that exercise the
//     repositories' own transaction scopes and therefore commit.
//
// Basic usage:
//
//	func TestMyFeature(t *testing.T) {
//	    pool := testdb.GetTestPool(t)
//	    testdb.WithTx(t, pool, func(t *testing.T, tx *sqlx.Tx) {
//	        users := postgres.NewPostgresUserStore(pool, hasher, nil).WithTx(tx)
//	        ...
//	    })
//	}
package testdb
