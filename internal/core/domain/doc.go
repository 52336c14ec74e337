// Package domain defines the core entities for dbtasks.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DatabaseConfig: One database's file path and resolution root
//   - TablePattern: A literal name or /regexp/ matching tables to ignore
//   - ToolSettings: External sqlite3 tool configuration
//   - TasksConfig: All configured environments
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
