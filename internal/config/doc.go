// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and TODO_-prefixed environment
// variables. It provides typed settings to the server, the record store and
// the task service while keeping configuration details out of business logic.
package config
