// Package todo implements the todo-list state container.
//
// A Store owns an ordered sequence of items (most recent first) and the
// active view filter. Every mutation that changes the sequence is committed
// synchronously to a durable key-value Slot under a constant key, and a new
// Store hydrates itself from that slot.
//
// # Failure Model
//
// Storage is never allowed to fail a caller. Slot write errors are logged and
// dropped; the in-memory sequence stays authoritative. A slot that is missing,
// unreadable, or holds a payload that does not validate against the item
// schema hydrates to an empty list.
//
// Input problems degrade to no-ops rather than errors: blank text is not
// added, and toggling or removing an unknown id changes nothing. The only
// error a caller can see is ErrInvalidFilter from SetFilter.
//
// # Persisted Format
//
// The slot value is a UTF-8 JSON array:
//
//	[{"id":"...","text":"Call mom","done":false,"createdAt":1700000000002}, ...]
//
// createdAt is milliseconds since the Unix epoch.
package todo
