// Package database provides SQLite database connectivity for Gray Cloud Bridge.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Schema migrations (embedded in the binary via the migrations package)
//   - Connection lifecycle management and health checks
//
// The bridge uses SQLite as the durable snapshot store for issued access and
// refresh tokens: every token mint writes through synchronously, and the
// in-memory token store is rebuilt wholesale from these tables at startup.
// Token loss is acceptable for everything else (authorization codes, device
// state), which is why only tokens have tables.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration files follow the YYYYMMDD_HHMMSS_description.up.sql /.down.sql
// naming convention and are applied in version order, each in its own
// transaction.
package database
