package i18n

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/number"
)

func testCatalog() *Catalog {
	cat := NewCatalog("")
	cat.Add("de", map[string]string{
		"yes":          "ja",
		"unknown_item": "Unbekannter Gegenstand {0}",
		"pair":         "{1} und {0} und {0}",
	})
	cat.AddNames("de", map[string]string{"de": "Deutsch"})
	return cat
}

func TestLocalizer_Translate(t *testing.T) {
	cat := testCatalog()

	t.Run("DefaultLanguageReturnsKey", func(t *testing.T) {
		loc := cat.Localizer(DefaultLanguage)
		assert.Equal(t, "unknown_item", loc.Translate("unknown_item", 5))
	})

	t.Run("Found", func(t *testing.T) {
		loc := cat.Localizer("de")
		assert.Equal(t, "ja", loc.Translate("yes"))
	})

	t.Run("Placeholders", func(t *testing.T) {
		loc := cat.Localizer("de")
		assert.Equal(t, "Unbekannter Gegenstand 42", loc.Translate("unknown_item", 42))
		assert.Equal(t, "b und a und a", loc.Translate("pair", "a", "b"))
	})

	t.Run("MissingKey", func(t *testing.T) {
		loc := cat.Localizer("de")
		assert.Equal(t, "no_such_key", loc.Translate("no_such_key"))
	})

	t.Run("UnknownLanguage", func(t *testing.T) {
		loc := cat.Localizer("xx")
		assert.Equal(t, "yes", loc.Translate("yes"))
	})

	t.Run("EmptyMeansDefault", func(t *testing.T) {
		assert.Equal(t, DefaultLanguage, cat.Localizer("").Lang())
	})
}

func TestLocalizer_LanguageName(t *testing.T) {
	loc := testCatalog().Localizer("de")
	assert.Equal(t, "Deutsch", loc.LanguageName("de"))
	assert.Equal(t, "fr", loc.LanguageName("fr"))
}

func TestLocalizer_PrinterGroupsThousands(t *testing.T) {
	loc := testCatalog().Localizer(DefaultLanguage)
	assert.Equal(t, "1,234,567", loc.Printer().Sprint(number.Decimal(1234567)))
}

func TestCatalog_Languages(t *testing.T) {
	cat := NewCatalog("")
	assert.Equal(t, []Language{{Code: "en", Name: "English"}}, cat.Languages())

	cat.SetLanguages([]Language{{Code: "zh-tw", Name: "Chinese"}, {Code: "de", Name: "German"}})
	assert.Equal(t, "de", cat.Languages()[0].Code)
	assert.True(t, cat.Has("en"))
	assert.False(t, cat.Has("de"))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"languages.json":      {Data: []byte(`{"en":{"name":"English"},"de":{"name":"German"}}`)},
		"lang_de.json":        {Data: []byte(`{"items":{"Sword":"Schwert"},"ui":{"yes":"ja"}}`)},
		"lang_names_de.json":  {Data: []byte(`{"de":"Deutsch","pets":{"Cat":"Katze"}}`)},
		"unrelated_file.json": {Data: []byte(`not json`)},
	}

	cat, err := LoadFS(fsys, "")
	require.NoError(t, err)

	loc := cat.Localizer("de")
	assert.Equal(t, "Schwert", loc.Translate("Sword"))
	assert.Equal(t, "ja", loc.Translate("yes"))
	assert.Equal(t, "Katze", loc.Translate("Cat"))
	assert.Equal(t, "Deutsch", loc.LanguageName("de"))
	assert.Len(t, cat.Languages(), 2)
}

func TestLoadFS_Malformed(t *testing.T) {
	fsys := fstest.MapFS{
		"lang_de.json": {Data: []byte(`{`)},
	}
	_, err := LoadFS(fsys, "")
	assert.Error(t, err)
}

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, src string) ([]byte, error) {
	if data, ok := f[src]; ok {
		return []byte(data), nil
	}
	return nil, fmt.Errorf("not found: %s", src)
}

func TestLoadRemote(t *testing.T) {
	f := fakeFetcher{
		"https://lang.test/languages.json": `{"de":{"name":"German"}}`,
		"https://lang.test/lang_de.json":   `{"ui":{"yes":"ja"}}`,
	}

	cat, err := LoadRemote(context.Background(), f, "https://lang.test/", "", []string{"en", "de"})

	// names file is missing, translations still usable
	assert.Error(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "ja", cat.Localizer("de").Translate("yes"))
	assert.Equal(t, "German", cat.Languages()[0].Name)
}

func TestLoadRemote_AllListedLanguages(t *testing.T) {
	f := fakeFetcher{
		"lang/languages.json":     `{"en":{"name":"English"},"fr":{"name":"French"}}`,
		"lang/lang_fr.json":       `{"ui":{"no":"non"}}`,
		"lang/lang_names_fr.json": `{"fr":"Français"}`,
	}

	cat, err := LoadRemote(context.Background(), f, "lang/", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "non", cat.Localizer("fr").Translate("no"))
	assert.Equal(t, "Français", cat.Localizer("fr").LanguageName("fr"))
}

func TestConfig_Codes(t *testing.T) {
	assert.Nil(t, Config{}.Codes())
	assert.Equal(t, []string{"fr", "zh-TW"}, Config{Languages: " fr, ,zh-TW"}.Codes())
}

func TestLoad_Sources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lang_de.json"), []byte(`{"ui":{"yes":"ja"}}`), 0o644))

	cat, err := Load(context.Background(), Config{Source: SourceDir, Dir: dir}, "", nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "ja", cat.Localizer("de").Translate("yes"))

	cat, err = Load(context.Background(), Config{Source: SourceDir, Dir: filepath.Join(dir, "missing")}, "", nil, "", nil)
	assert.Error(t, err)
	assert.Equal(t, "yes", cat.Localizer("de").Translate("yes"))

	_, err = Load(context.Background(), Config{Source: "ftp"}, "", nil, "", nil)
	assert.EqualError(t, err, "unknown translation source: ftp")
}
