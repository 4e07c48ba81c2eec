// Package dispatcher schedules row-independent work over a bounded pool of
// message-driven workers. The scheduler owns the pending queue and the
// result buffer outright; workers interact with it only through assignment
// and completion messages, which removes the need for any lock. A dispatch
// resolves once every spawned worker has confirmed retirement.
package dispatcher
