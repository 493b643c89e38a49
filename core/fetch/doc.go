// Package fetch downloads remote documents (release bundles, translation files,
// spreadsheet exports) through hashicorp/go-getter.
//
// go-getter resolves the source string with its detectors, so the same Fetcher
// accepts plain HTTP(S) URLs, local paths and any other scheme go-getter knows.
// Every fetch lands in a throw-away temp directory and is returned as bytes.
//
// Bucket implements the same interface on top of object storage, reading
// the source string as an object key.
//
// # Usage
//
//	f := fetch.NewGetter("")
//	data, err := f.Fetch(ctx, "https://data.example.com/lang/lang_de.json")
package fetch
