// Package loader registers the wiki features and mounts their routes.
//
// A feature reports whether it is enabled (compare needs a release source,
// integrity a storage client) and mounts its handlers on the router in Load.
// The Manager skips disabled features with a log line and stops at the first
// Load error.
package loader
