package card

import "time"

// Simulated round-trip latencies of the backend boundary.
const (
	DefaultAddDelay        = 1500 * time.Millisecond
	DefaultRemoveDelay     = 1000 * time.Millisecond
	DefaultSetDefaultDelay = 500 * time.Millisecond
)

// PublishTimeout bounds each snapshot handed to a registry's SnapshotSink.
const PublishTimeout = 2 * time.Second

// MinCardNumberLength is the shortest accepted card number after whitespace is stripped.
const MinCardNumberLength = 16

// Fallback failure messages per operation kind.
const (
	MsgAddFailed        = "Failed to add card"
	MsgRemoveFailed     = "Failed to remove card"
	MsgSetDefaultFailed = "Failed to set default card"
	MsgInvalidNumber    = "Invalid card number"
)
