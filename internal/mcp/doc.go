// Package mcp exposes the task, category and user services as Model
// Context Protocol tools served over stdio. Tool failures are reported as
// tool errors whose text starts with the HTTP status the REST API would
// have returned for the same error.
package mcp
