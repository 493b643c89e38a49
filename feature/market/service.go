package market

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/fetch"
	"gamedata-wiki/core/i18n"
	"gamedata-wiki/core/session"
	"gamedata-wiki/core/utils"

	"go.uber.org/zap"
)

var (
	// ErrNoData is returned when exporting an empty table.
	ErrNoData = errors.New("no data to export")
	// ErrNoValidData is returned when an import holds no price row.
	ErrNoValidData = errors.New("no valid data in csv")
)

// ExportHeader is the header row of exported CSV.
var ExportHeader = []string{"item_id", "market_buy", "market_sell"}

// Service holds the current price table.
type Service struct {
	mu      sync.RWMutex
	rows    []Row
	holder  *session.Holder
	fetcher fetch.Fetcher
	cache   Cache
	cfg     Config
	logger  *zap.Logger
}

// NewService creates a market service. The holder supplies the item
// catalog and translations.
func NewService(holder *session.Holder, fetcher fetch.Fetcher, cache Cache, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = &MemoryCache{}
	}
	return &Service{
		holder:  holder,
		fetcher: fetcher,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

// Rows returns a copy of the current table.
func (s *Service) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Row(nil), s.rows...)
}

// Load fills the table from the cache or, when nothing usable is cached or
// force is set, from the sheet. An empty ref uses the configured sheet.
func (s *Service) Load(ctx context.Context, ref string, force bool) ([]Row, error) {
	if !force {
		if rows, ok := s.fromCache(ctx); ok {
			s.set(rows)
			return rows, nil
		}
	}

	if ref == "" {
		ref = s.cfg.Sheet
	}
	if strings.TrimSpace(ref) == "" {
		return nil, ErrNoSheet
	}

	raw, err := FetchSheet(ctx, s.fetcher, ref, s.cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet: %w", err)
	}
	rows, err := ProcessRaw(raw, s.items(ctx))
	if err != nil {
		return nil, err
	}

	s.set(rows)
	if err := s.persist(ctx, rows); err != nil {
		return nil, err
	}
	s.logger.Info("Market prices loaded", zap.Int("rows", len(rows)))
	return rows, nil
}

// SetCell edits a buy or sell price. On error the previous value is kept.
func (s *Service) SetCell(ctx context.Context, row, col int, value string) (Row, error) {
	if !Editable(col) {
		return Row{}, fmt.Errorf("%w: %d", ErrNotEditable, col)
	}
	f, ok := utils.ParseNumber(value)
	if !ok {
		return Row{}, fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}

	s.mu.Lock()
	if row < 0 || row >= len(s.rows) {
		s.mu.Unlock()
		return Row{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	if col == ColMarketBuy {
		s.rows[row].MarketBuy = f
	} else {
		s.rows[row].MarketSell = f
	}
	updated := s.rows[row]
	snapshot := append([]Row(nil), s.rows...)
	s.mu.Unlock()

	return updated, s.persist(ctx, snapshot)
}

// Import replaces the table with the rows of a CSV document.
func (s *Service) Import(ctx context.Context, data []byte) ([]Row, error) {
	raw, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	rows, err := ProcessRaw(raw, s.items(ctx))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoValidData
	}

	s.set(rows)
	if err := s.persist(ctx, rows); err != nil {
		return nil, err
	}
	s.logger.Info("Market prices imported", zap.Int("rows", len(rows)))
	return rows, nil
}

// Export writes the ids and market prices as CSV.
func (s *Service) Export() ([]byte, error) {
	rows := s.Rows()
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ExportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			utils.ToString(r.ItemID),
			utils.ToString(r.MarketBuy),
			utils.ToString(r.MarketSell),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
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

func (s *Service) set(rows []Row) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}

func (s *Service) fromCache(ctx context.Context) ([]Row, bool) {
	data, ok, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to read market cache", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		s.logger.Warn("Ignoring unreadable market cache", zap.Error(err))
		return nil, false
	}
	return rows, true
}

func (s *Service) persist(ctx context.Context, rows []Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	if err := s.cache.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save market cache: %w", err)
	}
	return nil
}

// items returns the item catalog of the current session, or nil.
func (s *Service) items(ctx context.Context) []map[string]any {
	if s.holder == nil {
		return nil
	}
	sess, err := s.holder.Get(ctx)
	if err != nil {
		s.logger.Warn("Item catalog unavailable", zap.Error(err))
		return nil
	}
	items, _ := sess.Bundle.Records(catalog.ItemBase)
	return items
}
