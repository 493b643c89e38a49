package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/diff"
	"gamedata-wiki/core/i18n"
	"gamedata-wiki/core/session"
	"gamedata-wiki/core/table"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compared dataset and its id attribute.
const (
	Dataset = catalog.ItemBase
	IDField = table.DefaultIDField
)

// ErrMissingVersion is returned when a comparison lacks one of its versions.
var ErrMissingVersion = errors.New("both versions are required")

// Report is the outcome of one comparison.
type Report struct {
	Dataset  string       `json:"dataset"`
	VersionA string       `json:"version_a"`
	VersionB string       `json:"version_b"`
	Summary  diff.Summary `json:"summary"`
	Cached   bool         `json:"cached"`
	Result   *diff.Result `json:"result"`
	// Names maps ids of both versions to their untranslated names.
	Names map[string]string `json:"-"`
}

// Service compares release versions.
type Service struct {
	source catalog.Source
	paths  catalog.Paths
	cache  *diff.Cache
	holder *session.Holder
	logger *zap.Logger
}

// NewService creates a comparison service. The holder supplies the
// translations of the HTML view and may be nil.
func NewService(source catalog.Source, paths catalog.Paths, cfg Config, holder *session.Holder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		paths:  paths,
		cache:  diff.NewCache(cfg.CacheSize, time.Duration(cfg.CacheTTLMinutes)*time.Minute),
		holder: holder,
		logger: logger,
	}
}

// Versions lists the available versions, newest first.
func (s *Service) Versions(ctx context.Context) ([]string, error) {
	return s.source.Versions(ctx)
}

// Compare diffs the item catalog of version a against version b.
func (s *Service) Compare(ctx context.Context, a, b string) (*Report, error) {
	if a == "" || b == "" {
		return nil, ErrMissingVersion
	}

	load := func(ctx context.Context) (*diff.Result, error) {
		var recordsA, recordsB []map[string]any
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			recordsA, err = s.records(gctx, a)
			return err
		})
		g.Go(func() (err error) {
			recordsB, err = s.records(gctx, b)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return diff.Compare(recordsA, recordsB, IDField), nil
	}

	key := diff.Key{Dataset: Dataset, VersionA: a, VersionB: b}
	res, hit, err := s.cache.GetOrCompute(ctx, key, load)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Comparison ready",
		zap.String("key", key.String()),
		zap.Bool("cached", hit))

	return &Report{
		Dataset:  Dataset,
		VersionA: a,
		VersionB: b,
		Summary:  res.Summary(),
		Cached:   hit,
		Result:   res,
		Names:    namesOf(res),
	}, nil
}

// Localizer returns the localizer of lang, or a default-language one when
// no translations are loaded.
func (s *Service) Localizer(ctx context.Context, lang string) *i18n.Localizer {
	if s.holder != nil {
		if sess, err := s.holder.Get(ctx); err == nil {
			if !sess.Catalog.Has(lang) {
				lang = ""
			}
			return sess.Catalog.Localizer(lang)
		}
	}
	return i18n.NewCatalog("").Localizer("")
}

// Purge drops every cached comparison.
func (s *Service) Purge() {
	s.cache.Purge()
}

func (s *Service) records(ctx context.Context, version string) ([]map[string]any, error) {
	data, err := s.source.Read(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("failed to read release %s: %w", version, err)
	}
	b, err := catalog.ParseDatasets(version, data, s.paths, []string{Dataset})
	if err != nil {
		return nil, err
	}
	records, ok := b.Records(Dataset)
	if !ok {
		return nil, &catalog.MissingError{Version: version, Datasets: []string{Dataset}}
	}
	return records, nil
}

func namesOf(res *diff.Result) map[string]string {
	var all []map[string]any
	all = append(all, res.Removed...)
	for _, m := range res.Modified {
		all = append(all, m.Before, m.After)
	}
	all = append(all, res.Added...)

	return table.BuildNameMap(all, IDField, table.DefaultNameField, noTranslation{})
}

type noTranslation struct{}

func (noTranslation) Translate(key string, _ ...any) string { return key }
