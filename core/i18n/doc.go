// Package i18n is the translation service of the wiki renderer.
//
// Translations are flat key -> string maps per language, loaded from
// lang_<code>.json files whose category objects are merged into a single key
// space. The default language (English) is not translated: its keys are the
// display text, so Translate returns the key unchanged. Found translations
// support positional placeholders {0}, {1}, ...
//
// A Catalog is built once at startup; callers obtain a per-language Localizer
// for each render pass instead of switching a global "current language".
// The Localizer also carries a golang.org/x/text message.Printer used for
// locale aware number formatting.
//
// # Usage
//
//	cat, err := i18n.LoadFS(os.DirFS("lang"), i18n.DefaultLanguage)
//	loc := cat.Localizer("zh-tw")
//	loc.Translate("unknown_item", 42)
package i18n
