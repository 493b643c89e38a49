// Package table renders game-data records as HTML tables driven by a
// declarative configuration.
//
// A Config lists Field descriptors. Each field names a key path into the
// record, a label, a display type and a Kind. The Generator resolves every
// visible field of every record through the handler registered for its
// kind, formats the result per display type and returns a Table whose
// Markup method serialises it.
//
// Handlers never fail a render: unknown ids become a translated placeholder
// carrying the raw id, and a panicking handler degrades its cell to "N/A".
//
//	gen := table.NewGenerator()
//	names := table.NameMaps{
//	    table.NamesItems: table.BuildNameMap(items, table.DefaultIDField, table.DefaultNameField, loc),
//	}
//	html := gen.Render(cfg, records, names, loc).Markup()
package table
