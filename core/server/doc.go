// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the listen port, the API key guarding mutating endpoints and the language
// served when a request does not ask for one.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by cmd/start.go to configure the Fiber application.
package server
