// Package sqlite provides the SQLite connection handler used by dbtasks.
//
// Connections are opened through database/sql with the pure-Go
// modernc.org/sqlite driver, so no CGO toolchain is required. Opening a
// connection to a file-backed database creates the file.
//
// Example usage:
//
//	handler := sqlite.NewHandler()
//	defer handler.Close()
//
//	conn, err := handler.Establish(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	encoding, err := conn.Encoding(ctx)
package sqlite
