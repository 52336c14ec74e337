// Package memory provides in-memory implementations of driven port interfaces.
// They are used by tests and never persist anything.
package memory
