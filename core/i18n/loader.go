package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gamedata-wiki/core/fetch"
)

const (
	languagesFile   = "languages.json"
	messagesPrefix  = "lang_"
	namesPrefix     = "lang_names_"
	translationsExt = ".json"
)

// LoadFS builds a catalog from a directory holding languages.json,
// lang_<code>.json and lang_names_<code>.json files. Missing files are
// skipped; a file that does not parse is an error.
func LoadFS(fsys fs.FS, defaultLang string) (*Catalog, error) {
	cat := NewCatalog(defaultLang)

	if data, err := fs.ReadFile(fsys, languagesFile); err == nil {
		langs, err := ParseLanguages(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", languagesFile, err)
		}
		cat.SetLanguages(langs)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", languagesFile, err)
	}

	paths, err := fs.Glob(fsys, messagesPrefix+"*"+translationsExt)
	if err != nil {
		return nil, fmt.Errorf("glob translation files: %w", err)
	}

	for _, p := range paths {
		base := path.Base(p)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}

		if strings.HasPrefix(base, namesPrefix) {
			code := strings.TrimSuffix(strings.TrimPrefix(base, namesPrefix), translationsExt)
			messages, names, err := ParseMessages(data)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", p, err)
			}
			cat.Add(code, messages)
			cat.AddNames(code, names)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(base, messagesPrefix), translationsExt)
		messages, _, err := ParseMessages(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		cat.Add(code, messages)
	}

	return cat, nil
}

// LoadRemote downloads the language list and the translation files of
// codes from baseURL. Without codes every listed language is loaded. The
// catalog is always returned; failed downloads are reported together in the
// error and leave that language untranslated.
func LoadRemote(ctx context.Context, f fetch.Fetcher, baseURL, defaultLang string, codes []string) (*Catalog, error) {
	cat := NewCatalog(defaultLang)
	base := strings.TrimSuffix(baseURL, "/")
	if base != "" {
		base += "/"
	}
	var errs []error

	if data, err := f.Fetch(ctx, base+languagesFile); err != nil {
		errs = append(errs, err)
	} else if langs, err := ParseLanguages(data); err != nil {
		errs = append(errs, fmt.Errorf("parse %s: %w", languagesFile, err))
	} else {
		cat.SetLanguages(langs)
	}

	if len(codes) == 0 {
		for _, lang := range cat.Languages() {
			codes = append(codes, lang.Code)
		}
	}

	for _, code := range codes {
		if code == cat.Default() {
			continue
		}

		data, err := f.Fetch(ctx, base+messagesPrefix+code+translationsExt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		messages, _, err := ParseMessages(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse translations %s: %w", code, err))
			continue
		}
		cat.Add(code, messages)

		data, err = f.Fetch(ctx, base+namesPrefix+code+translationsExt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		messages, names, err := ParseMessages(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse language names %s: %w", code, err))
			continue
		}
		cat.Add(code, messages)
		cat.AddNames(code, names)
	}

	return cat, errors.Join(errs...)
}

// ParseMessages flattens a translation document. Category objects are
// merged into one key space; top-level strings are returned separately as
// plain names.
func ParseMessages(data []byte) (messages map[string]string, names map[string]string, err error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}

	messages = make(map[string]string)
	names = make(map[string]string)
	for key, raw := range doc {
		var category map[string]any
		if err := json.Unmarshal(raw, &category); err == nil {
			for k, v := range category {
				if s, ok := v.(string); ok {
					messages[k] = s
				}
			}
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			names[key] = s
		}
	}
	return messages, names, nil
}

// ParseLanguages decodes a {code: {name}} language list.
func ParseLanguages(data []byte) ([]Language, error) {
	var doc map[string]struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	langs := make([]Language, 0, len(doc))
	for code, entry := range doc {
		langs = append(langs, Language{Code: code, Name: entry.Name})
	}
	return langs, nil
}
