// Package tables serves the wiki tables of the loaded release.
//
// Each table is described by a YAML configuration (configs/*.yaml, embedded
// and optionally overridden from a directory) and fed by a builder that
// turns the datasets of the release bundle into flat records: carpentry
// merges floors, furniture and walls; forge formulas are keyed objects
// sorted by id descending; enchanting chances are rate formulas evaluated
// at fixed material levels; image sheet aliases are resolved.
//
// Rendering goes through core/table with a Localizer of the requested
// language, so a language switch is a plain re-render. A table whose
// dataset is absent renders a translated message instead of failing the
// page.
//
// # Routes
//
//	GET  /                   full wiki page
//	GET  /tables             table list
//	GET  /tables/:dataset    one table (HTML fragment or JSON)
//	POST /tables/reload      reload the release and translations
//	GET  /languages          available languages
package tables
