// Package pagination implements keyset (cursor) pagination.
//
// A page request carries an optional opaque cursor and a limit. The cursor
// encodes a direction and the composite key of a boundary row. BuildQuery
// turns it into a filter over the key columns plus a scan order and asks
// for one lookahead row; Evaluate uses that row to decide whether further
// pages exist and derives the next and prev cursors; BuildLinks and
// NewPaginated assemble the response envelope.
//
// Keys must follow a real composite index and end with a unique column.
// No total count is ever computed.
package pagination
