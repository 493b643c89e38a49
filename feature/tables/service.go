package tables

import (
	"context"
	"errors"
	"fmt"
	"html"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/i18n"
	"gamedata-wiki/core/session"
	"gamedata-wiki/core/table"

	"go.uber.org/zap"
)

// ErrUnknownDataset is returned for a table name without configuration.
var ErrUnknownDataset = errors.New("unknown dataset")

// fallbacks are the default-language texts of message keys.
var fallbacks = map[string]string{
	KeyCalculationFailed: "Calculation failed",
	"data_not_loaded":    "{0} data is not loaded",
	"wiki_title":         "Game Data Wiki",
}

// Rendered is one rendered table of the wiki.
type Rendered struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	HTML    string     `json:"-"`
	Missing bool       `json:"missing"`
	Message string     `json:"message,omitempty"`
}

// Service renders the wiki tables of the current session.
type Service struct {
	holder   *session.Holder
	gen      *table.Generator
	configs  map[string]table.Config
	builders map[string]Builder
	logger   *zap.Logger
}

// NewService creates a table service over configs.
func NewService(holder *session.Holder, configs map[string]table.Config, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	sep := cfg.Separator
	if sep == "" {
		sep = table.DefaultSeparator
	}
	gen := table.NewGenerator(
		table.WithSeparator(sep),
		table.WithErrorHook(func(dataset string, f table.Field, err error) {
			logger.Warn("Cell rendering failed",
				zap.String("dataset", dataset),
				zap.String("field", f.KeyPath),
				zap.Error(err))
		}),
	)
	return &Service{
		holder:   holder,
		gen:      gen,
		configs:  configs,
		builders: Builders(),
		logger:   logger,
	}
}

// Tables returns the configured table names in page order.
func (s *Service) Tables() []string {
	names := make([]string, 0, len(Order))
	for _, name := range Order {
		if _, ok := s.configs[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Version returns the version of the loaded release.
func (s *Service) Version(ctx context.Context) (string, error) {
	sess, err := s.holder.Get(ctx)
	if err != nil {
		return "", err
	}
	return sess.Version, nil
}

// Languages returns the available languages.
func (s *Service) Languages(ctx context.Context) ([]i18n.Language, error) {
	sess, err := s.holder.Get(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Catalog.Languages(), nil
}

// Localizer returns the localizer of lang for the current session.
func (s *Service) Localizer(ctx context.Context, lang string) (*i18n.Localizer, error) {
	sess, err := s.holder.Get(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Catalog.Localizer(lang), nil
}

// ResolveLang returns lang when translations exist for it and the default
// language otherwise.
func (s *Service) ResolveLang(ctx context.Context, lang string) (string, error) {
	sess, err := s.holder.Get(ctx)
	if err != nil {
		return "", err
	}
	if lang == "" || !sess.Catalog.Has(lang) {
		return sess.Catalog.Default(), nil
	}
	return lang, nil
}

// Render renders one table in lang.
func (s *Service) Render(ctx context.Context, name, lang string) (*Rendered, error) {
	if _, ok := s.configs[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	sess, err := s.holder.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc := sess.Catalog.Localizer(lang)
	return s.render(sess.Bundle, name, loc, NameMapsOf(sess.Bundle, loc))
}

// RenderAll renders every configured table in lang. The name maps are
// built once and shared by all tables.
func (s *Service) RenderAll(ctx context.Context, lang string) ([]*Rendered, error) {
	sess, err := s.holder.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc := sess.Catalog.Localizer(lang)
	names := NameMapsOf(sess.Bundle, loc)

	var out []*Rendered
	for _, name := range s.Tables() {
		r, err := s.render(sess.Bundle, name, loc, names)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Reload reloads the release and the translations.
func (s *Service) Reload(ctx context.Context) (*session.Session, error) {
	return s.holder.Reload(ctx)
}

func (s *Service) render(b *catalog.Bundle, name string, loc *i18n.Localizer, names table.NameMaps) (*Rendered, error) {
	cfg := s.configs[name]
	title := cfg.Title
	if title == "" {
		title = name
	}
	r := &Rendered{Name: name, Title: loc.Translate(title)}

	build, ok := s.builders[name]
	if !ok {
		build = recordsOf(cfg.Dataset)
	}
	records, err := build(b, loc)
	if errors.Is(err, catalog.ErrDatasetMissing) {
		s.logger.Warn("Table data not loaded", zap.String("table", name), zap.Error(err))
		r.Missing = true
		r.Message = translate(loc, name+"_data_not_loaded", "data_not_loaded", name)
		r.HTML = "<p>" + html.EscapeString(r.Message) + "</p>"
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}

	t := s.gen.Render(cfg, records, names, loc)
	r.Headers = t.Headers
	r.Rows = t.Strings()
	r.HTML = t.Markup()
	return r, nil
}

// NameMapsOf builds the item and pet name maps of a bundle.
func NameMapsOf(b *catalog.Bundle, tr table.Translator) table.NameMaps {
	names := table.NameMaps{}
	if items, ok := b.Records(catalog.ItemBase); ok {
		names[table.NamesItems] = table.BuildNameMap(items, table.DefaultIDField, table.DefaultNameField, tr)
	}
	if pets, ok := b.Records(catalog.Pets); ok {
		names[table.NamesPets] = table.BuildNameMap(pets, table.DefaultIDField, table.DefaultNameField, tr)
	}
	return names
}

// translate looks key up and falls back to the default text of fallback
// when no translation exists.
func translate(tr table.Translator, key, fallback string, args ...any) string {
	if s := tr.Translate(key, args...); s != key {
		return s
	}
	if text, ok := fallbacks[fallback]; ok {
		return i18n.Substitute(text, args...)
	}
	return key
}
