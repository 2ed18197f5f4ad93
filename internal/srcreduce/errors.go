package srcreduce

import "errors"

// ErrNotReproducing is returned when the initial RequestInfo does not
// reproduce under the oracle (spec.md §7, fatal).
var ErrNotReproducing = errors.New("not_reproducing")

// errInterfaceUnavailable signals that module-interface extraction
// failed; always absorbed by the caller (spec.md §7: local, not fatal).
var errInterfaceUnavailable = errors.New("interface_unavailable")
