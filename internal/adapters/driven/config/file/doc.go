// Package file provides file-based implementations of driven port interfaces.
// These adapters read configuration from the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration of databases and the sqlite3 tool
//
// A configuration file looks like:
//
//	root = "."
//	default_environment = "development"
//
//	[tools]
//	sqlite3 = "sqlite3"
//	structure_dump_flags = []
//
//	[schema]
//	ignore_tables = ["ar_internal_metadata", "/^tmp_/"]
//
//	[databases.development]
//	database = "db/development.sqlite3"
//
// DBTASKS_CONFIG, DBTASKS_ENV, DBTASKS_ROOT and DBTASKS_SQLITE3 override
// the file path, default environment, root and executable respectively.
package file
