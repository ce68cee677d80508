package bridge

import "errors"

// Callback is the error-first result convention shared by every bridge
// operation that reports back to application code. It is invoked exactly
// once per logical operation with (error-or-nil, result-or-nil).
type Callback func(err error, result any)

// report resolves a (message, value) pair into a single callback
// invocation. A nil callback downgrades to a debug log entry so
// fire-and-forget callers never fault, and the primary effect of the
// operation still stands.
func (b *Bridge) report(cb Callback, op, errMsg string, result any) {
	if cb == nil {
		b.logger.Debug("No callback registered for operation", "op", op, "err", errMsg)
		return
	}
	if errMsg != "" {
		cb(errors.New(errMsg), nil)
		return
	}
	cb(nil, result)
}
