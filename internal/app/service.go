package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"tradeJournal/config"
	"tradeJournal/internal/analytics"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/pnl"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/report"
	"tradeJournal/internal/risk"
	"tradeJournal/internal/tradecsv"
)

// Analysis messages shown in place of the commentary when analysis fails.
const (
	MsgMissingCredential = "API Key is missing. Please configure your environment."
	MsgNoTrades          = "No trades available to analyze. Please add some trades to your journal first."
	MsgEmptyAnalysis     = "Unable to generate analysis at this time."
	MsgAnalysisFailed    = "An error occurred while analyzing your trades. Please try again later."
)

// Analysis is the outcome of an AI review. Text is either the commentary or
// one of the Msg* strings; OK tells the two apart.
type Analysis struct {
	Text   string         `json:"text"`
	Blocks []report.Block `json:"blocks"`
	OK     bool           `json:"ok"`
	Cached bool           `json:"cached"`
}

// ExportFile is a rendered CSV export.
type ExportFile struct {
	Filename string
	Content  string
}

// JournalService orchestrates the trade journal's operations.
type JournalService struct {
	logger   ports.Logger
	repo     ports.TradeRepository
	analyst  ports.TradeAnalyst
	sizer    *risk.Sizer
	validate *validator.Validate

	analysisCache  *cache.Cache // nil when caching is disabled
	analysisGroup  singleflight.Group
	importMaxBytes int64

	now   func() time.Time
	newID func() string
}

// NewJournalService creates a new application service instance.
func NewJournalService(
	cfg *config.Config,
	logger ports.Logger,
	repo ports.TradeRepository,
	analyst ports.TradeAnalyst,
) (*JournalService, error) {

	// Validate dependencies
	if cfg == nil || logger == nil || repo == nil || analyst == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	if cfg.ImportMaxBytes <= 0 {
		return nil, fmt.Errorf("configuration ImportMaxBytes must be positive")
	}

	s := &JournalService{
		logger:   logger,
		repo:     repo,
		analyst:  analyst,
		validate: validator.New(),
		sizer: risk.NewSizer(risk.SizerConfig{
			AccountBalance: cfg.SizerAccountBalance,
			RiskPercent:    cfg.SizerRiskPercent,
			Leverage:       cfg.SizerLeverage,
		}),
		importMaxBytes: cfg.ImportMaxBytes,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	if cfg.AICacheTTL > 0 {
		s.analysisCache = cache.New(cfg.AICacheTTL, 2*cfg.AICacheTTL)
	}
	return s, nil
}

// AddTrade validates a manually entered trade, computes its outcome and
// stores it at the head of the journal.
func (s *JournalService) AddTrade(ctx context.Context, input domain.TradeInput) (*domain.Trade, error) {
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err)
	}

	trade := pnl.NewTrade(s.newID(), input, false)
	if !trade.Finite() {
		return nil, fmt.Errorf("%w: trade values overflow the P&L range", ports.ErrInvalidRequest)
	}
	if err := s.repo.Add(ctx, trade); err != nil {
		s.logger.Error(ctx, err, "Failed to store trade", map[string]interface{}{"symbol": trade.Symbol})
		return nil, fmt.Errorf("failed to store trade: %w", err)
	}

	s.logger.Info(ctx, "Trade added", map[string]interface{}{
		"id":     trade.ID,
		"symbol": trade.Symbol,
		"pnl":    trade.PNL,
		"status": string(trade.Status),
	})
	return trade, nil
}

// DeleteTrade removes a trade by ID.
func (s *JournalService) DeleteTrade(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.Error(ctx, err, "Failed to delete trade", map[string]interface{}{"id": id})
		}
		return err
	}
	s.logger.Info(ctx, "Trade deleted", map[string]interface{}{"id": id})
	return nil
}

// ListTrades returns all trades, newest exit date first.
func (s *JournalService) ListTrades(ctx context.Context) ([]*domain.Trade, error) {
	trades, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return analytics.NewestFirst(trades), nil
}

// RecentTrades returns up to n trades, newest exit date first.
func (s *JournalService) RecentTrades(ctx context.Context, n int) ([]*domain.Trade, error) {
	trades, err := s.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(trades) {
		trades = trades[:n]
	}
	return trades, nil
}

// Stats computes the dashboard statistics over the whole journal.
func (s *JournalService) Stats(ctx context.Context) (analytics.DashboardStats, error) {
	trades, err := s.repo.List(ctx)
	if err != nil {
		return analytics.DashboardStats{}, fmt.Errorf("failed to list trades: %w", err)
	}
	return analytics.ComputeStats(trades), nil
}

// EquityCurve builds the cumulative P&L curve of the journal.
func (s *JournalService) EquityCurve(ctx context.Context) ([]analytics.EquityPoint, error) {
	trades, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return analytics.BuildEquityCurve(trades), nil
}

// Performance computes drawdowns, streaks and breakdowns of the journal.
func (s *JournalService) Performance(ctx context.Context) (*analytics.PerformanceMetrics, error) {
	trades, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return analytics.AnalyzePerformance(trades), nil
}

// ImportCSV parses broker CSV text and prepends the accepted trades as one batch.
func (s *JournalService) ImportCSV(ctx context.Context, text string) (*tradecsv.ImportResult, error) {
	result, err := tradecsv.Parse(text, tradecsv.ParseOptions{Now: s.now, NewID: s.newID})
	if err != nil {
		s.logger.Warn(ctx, "CSV import rejected", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	if err := s.repo.AddMany(ctx, result.Trades); err != nil {
		s.logger.Error(ctx, err, "Failed to store imported trades")
		return nil, fmt.Errorf("failed to store imported trades: %w", err)
	}

	s.logger.Info(ctx, "CSV import completed", map[string]interface{}{
		"accepted": result.Accepted(),
		"skipped":  result.Skipped,
	})
	return result, nil
}

// ImportReader reads a CSV upload, bounded by the configured size limit, and imports it.
func (s *JournalService) ImportReader(ctx context.Context, r io.Reader) (*tradecsv.ImportResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.importMaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV upload: %w", err)
	}
	if int64(len(data)) > s.importMaxBytes {
		return nil, fmt.Errorf("%w: CSV upload exceeds %d bytes", ports.ErrInvalidRequest, s.importMaxBytes)
	}
	return s.ImportCSV(ctx, string(data))
}

// ExportCSV renders the journal, in insertion order, as a CSV download.
func (s *JournalService) ExportCSV(ctx context.Context) (*ExportFile, error) {
	trades, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	content, err := tradecsv.Export(trades)
	if err != nil {
		return nil, err
	}
	return &ExportFile{Filename: tradecsv.ExportFilename(s.now()), Content: content}, nil
}

// SizingDefaults returns a sizing request pre-filled with the configured defaults.
func (s *JournalService) SizingDefaults() domain.SizingRequest {
	return s.sizer.NewRequest()
}

// SizePosition computes a position plan.
func (s *JournalService) SizePosition(ctx context.Context, req domain.SizingRequest) (*domain.PositionPlan, error) {
	return s.sizer.Calculate(ctx, req)
}

// Analyze asks the analyst to review the journal. It never fails: errors are
// logged and replaced by a user-facing message. Successful reviews are cached
// per trade set and concurrent identical requests share one call.
func (s *JournalService) Analyze(ctx context.Context) *Analysis {
	trades, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to list trades for analysis")
		return failedAnalysis(MsgAnalysisFailed)
	}

	key, err := fingerprint(trades)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to fingerprint trades for analysis")
		return failedAnalysis(MsgAnalysisFailed)
	}

	if s.analysisCache != nil {
		if text, found := s.analysisCache.Get(key); found {
			s.logger.Debug(ctx, "Analysis served from cache", map[string]interface{}{"trades": len(trades)})
			return &Analysis{Text: text.(string), Blocks: report.ParseBlocks(text.(string)), OK: true, Cached: true}
		}
	}

	v, err, shared := s.analysisGroup.Do(key, func() (interface{}, error) {
		return s.analyst.Analyze(ctx, trades)
	})
	if err != nil {
		msg := analysisMessage(err)
		if msg == MsgAnalysisFailed {
			s.logger.Error(ctx, err, "Trade analysis failed", map[string]interface{}{"trades": len(trades)})
		} else {
			s.logger.Warn(ctx, "Trade analysis unavailable", map[string]interface{}{"reason": err.Error()})
		}
		return failedAnalysis(msg)
	}

	text := v.(string)
	if text == "" {
		return failedAnalysis(MsgEmptyAnalysis)
	}
	if s.analysisCache != nil {
		s.analysisCache.SetDefault(key, text)
	}
	s.logger.Info(ctx, "Trade analysis completed", map[string]interface{}{"trades": len(trades), "shared": shared})
	return &Analysis{Text: text, Blocks: report.ParseBlocks(text), OK: true}
}

func failedAnalysis(msg string) *Analysis {
	return &Analysis{Text: msg, Blocks: report.ParseBlocks(msg)}
}

// analysisMessage maps an analyst error to the message shown to the user.
func analysisMessage(err error) string {
	switch {
	case errors.Is(err, ports.ErrMissingCredential):
		return MsgMissingCredential
	case errors.Is(err, ports.ErrNoTrades):
		return MsgNoTrades
	case errors.Is(err, ports.ErrEmptyAnalysis):
		return MsgEmptyAnalysis
	default:
		return MsgAnalysisFailed
	}
}

// fingerprint identifies a trade set by the hash of the summary sent for review.
func fingerprint(trades []*domain.Trade) (string, error) {
	data, err := json.Marshal(domain.Summarize(trades))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
