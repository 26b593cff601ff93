// Package http implements the REST transport of the vault server.
//
// Handlers read the session token from the "token" cookie or the
// Authorization header and pass it, untouched, to the vault gate in the
// service layer; authorization decisions are made there. This package only
// maps the resulting errors to status codes and JSON bodies.
//
// Cross-cutting concerns are middlewares: panic recovery, request tracing,
// access logging and response compression.
package http
