// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ConnectionHandler: Establishes and tracks the live database connection
//   - Connection: Encoding, data sources, quoting, disconnect/reconnect
//   - CommandRunner: Runs the external sqlite3 tool
//   - ConfigStore: Configured databases and tool settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
