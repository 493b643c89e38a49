// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// from the application's configuration. The database is optional: it only
// backs the market price cache when that backend is selected.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the
// server within the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The
// integrity feature uses it to compare the market cache table with its
// GORM model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "market_price_caches")
package database
