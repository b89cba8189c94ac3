// Package service contains the application use cases for users, categories
// and tasks. It coordinates domain objects and the store interfaces defined
// in internal/store.
//
// Key components:
//
// 1. Service Interfaces:
//   - TaskService owns the task lifecycle: creation, partial updates under
//     optimistic concurrency control, and read views with resolved names
//   - CategoryService deduplicates categories by case-insensitive name
//   - UserService enforces unique, normalized email addresses
//
// 2. EntityResolver:
//   - Looks up users and categories by id for the services and reports a
//     domain.NotFoundError when they are absent
//
// 3. Error Handling:
//   - Store sentinels are translated into the domain taxonomy
//     (ValidationError, NotFoundError, ConflictError)
//   - Anything else is wrapped with context and left for the caller to
//     report as an internal error
//
// Services never depend on a concrete store implementation.
package service
