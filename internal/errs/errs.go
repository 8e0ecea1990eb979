// Package errs defines the application error taxonomy.
//
// Every service operation returns either a success value or one of these
// typed errors; the HTTP boundary (global error handler) is the only place
// that maps them to status codes and JSON bodies.
package errs
