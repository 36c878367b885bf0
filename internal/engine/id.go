package engine

import "sync/atomic"

// ID identifies a shape within one running process. Clones share the id of
// their source; freshly constructed and freshly loaded shapes get a new one.
type ID int64

var lastID atomic.Int64

// NextID returns a process-wide unique shape id.
func NextID() ID {
	return ID(lastID.Add(1))
}
