// Package githost provides a typed Go client for the slice of the GitHub
// REST API that tracket persists through: single-file contents
// read/write/delete, recursive tree listing, raw blob fetch, and repository
// metadata.
//
// Every write is an independent commit gated by the file's current blob SHA.
// The client performs no retries, no caching, and no backoff: every failure
// is classified into a typed *Error and surfaced synchronously to the
// caller. All requests are made over HTTPS; non-HTTPS base URLs are refused.
package githost
