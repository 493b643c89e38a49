// Package integrity provides health checks of the data the wiki depends on.
//
// # Checks Provided
//
//   - Structure: Checks if the required folders exist in the storage bucket (releases/, lang/, cache/).
//   - Releases: Verifies that every release bundle in storage holds all required datasets.
//   - Schema: Validates that the database tables (market price cache) match their gorm models.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/releases : Runs release check.
//   - GET /integrity/schema : Runs schema check.
package integrity
