// Package sqlerr classifies database driver errors.
//
// It parses SQLSTATE codes from the Postgres driver and converts them into
// taxonomy errors with messages a client can act on (e.g. a unique violation
// becomes a Conflict with the offending field named).
package sqlerr
