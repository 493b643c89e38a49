// Package middleware groups the fiber middleware of the wiki server.
//
//   - rayid: assigns every request an X-Ray-ID, kept when the client sends a valid UUID.
//   - auth: requires X-API-Key (or api_key) on reload, market edits, imports and
//     integrity fixes. Pages and JSON reads stay public.
package middleware
