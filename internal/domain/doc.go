// Package domain contains the core business entities of the task tracker:
// tasks, the users they are created by and assigned to, and the categories
// that group them. It also defines the error taxonomy (validation, not found,
// conflict) that every service returns and every transport maps to a status.
//
// Nothing in this package touches storage or transport.
package domain
