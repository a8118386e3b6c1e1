// Package validation holds the checks that guard writes to users.
//
// The format, complexity, age and gender checks are pure functions. The
// uniqueness check queries the users table and is advisory only: the
// database constraint on users.email remains the authority, and repositories
// translate its violation into store.ErrEmailExists.
package validation
