// Package requestid attaches a correlation ID to every HTTP request and
// exposes it to handlers and to the logger.
package requestid
