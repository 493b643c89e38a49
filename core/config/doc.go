// Package config provides configuration management for the wiki server.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags
// of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, default language)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Database: MySQL or SQLite connection details (market cache)
//   - Data: release bundle source (dir, storage, remote) and pinned version
//   - I18n: translation source and languages
//   - Tables: table configuration directory and cell separator
//   - Compare: comparison cache size and age
//   - Market: market cache backend and default Google Sheet
//
// Environment keys join the section and the key with an underscore,
// e.g. DATA_SOURCE or MARKET_CACHE_BACKEND.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
