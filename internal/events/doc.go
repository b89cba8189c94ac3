// Package events carries task change notifications from the task service to
// in-process handlers.
//
// The primary components are:
//   - TaskEvent: a committed create, update or completion of a task
//   - EventHandler: receives events
//   - EventEmitter: publishes events; InMemoryEventEmitter dispatches
//     synchronously to registered handlers
//   - AuditLogHandler: logs each event as a structured audit record
package events
