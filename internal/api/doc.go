// Package api exposes the task, category and user services over HTTP.
// Handlers decode and validate JSON bodies, call the services and map
// domain errors to status codes: validation failures to 400, missing rows
// to 404 and conflicts, including stale task versions, to 409.
package api
