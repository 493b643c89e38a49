package i18n

import (
	"sort"
	"strconv"
	"strings"

	"gamedata-wiki/core/utils"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguage is the language whose keys are already display text.
const DefaultLanguage = "en"

// Language is an entry of the available language list.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog holds the flattened translations of every loaded language.
// A Catalog is filled once during setup and only read afterwards.
type Catalog struct {
	defaultLang  string
	translations map[string]map[string]string
	names        map[string]map[string]string
	languages    []Language
}

// NewCatalog creates an empty catalog. An empty defaultLang means DefaultLanguage.
func NewCatalog(defaultLang string) *Catalog {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return &Catalog{
		defaultLang:  defaultLang,
		translations: make(map[string]map[string]string),
		names:        make(map[string]map[string]string),
	}
}

// Default returns the default language code.
func (c *Catalog) Default() string {
	return c.defaultLang
}

// Add merges messages into the translations of lang.
func (c *Catalog) Add(lang string, messages map[string]string) {
	dst, ok := c.translations[lang]
	if !ok {
		dst = make(map[string]string, len(messages))
		c.translations[lang] = dst
	}
	for k, v := range messages {
		dst[k] = v
	}
}

// AddNames merges language display names as seen from lang.
func (c *Catalog) AddNames(lang string, names map[string]string) {
	dst, ok := c.names[lang]
	if !ok {
		dst = make(map[string]string, len(names))
		c.names[lang] = dst
	}
	for k, v := range names {
		dst[k] = v
	}
}

// SetLanguages replaces the available language list.
func (c *Catalog) SetLanguages(langs []Language) {
	c.languages = append([]Language(nil), langs...)
	sort.SliceStable(c.languages, func(i, j int) bool {
		return c.languages[i].Code < c.languages[j].Code
	})
}

// Languages returns the available languages. When no list was loaded the
// default language is the only entry.
func (c *Catalog) Languages() []Language {
	if len(c.languages) == 0 {
		return []Language{{Code: c.defaultLang, Name: "English"}}
	}
	return append([]Language(nil), c.languages...)
}

// Has reports whether lang is the default or has loaded translations.
func (c *Catalog) Has(lang string) bool {
	if lang == c.defaultLang {
		return true
	}
	_, ok := c.translations[lang]
	return ok
}

// Localizer returns a read-only view of the catalog for lang.
// Unknown languages behave like the default language.
func (c *Catalog) Localizer(lang string) *Localizer {
	if lang == "" {
		lang = c.defaultLang
	}
	return &Localizer{
		lang:      lang,
		isDefault: lang == c.defaultLang,
		messages:  c.translations[lang],
		names:     c.names[lang],
		printer:   message.NewPrinter(parseTag(lang)),
	}
}

func parseTag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}

// Localizer translates keys for one language.
type Localizer struct {
	lang      string
	isDefault bool
	messages  map[string]string
	names     map[string]string
	printer   *message.Printer
}

// Lang returns the language code of this localizer.
func (l *Localizer) Lang() string {
	return l.lang
}

// Translate returns the translation of key with {0}, {1}, ... replaced by
// args. The key itself is returned for the default language and for keys
// without a translation.
func (l *Localizer) Translate(key string, args ...any) string {
	if l.isDefault {
		return key
	}
	translation, ok := l.messages[key]
	if !ok {
		return key
	}
	return Substitute(translation, args...)
}

// LanguageName translates a language code into its display name.
func (l *Localizer) LanguageName(code string) string {
	if name, ok := l.names[code]; ok && name != "" {
		return name
	}
	return code
}

// Printer returns the locale aware printer used for number formatting.
func (l *Localizer) Printer() *message.Printer {
	return l.printer
}

// Substitute replaces every {i} placeholder in s with args[i].
func Substitute(s string, args ...any) string {
	for i, arg := range args {
		s = strings.ReplaceAll(s, "{"+strconv.Itoa(i)+"}", utils.ToString(arg))
	}
	return s
}
