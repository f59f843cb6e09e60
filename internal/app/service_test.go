package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/memory"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/report"
)

// Mock implementations
type mockLogger struct {
	mu        sync.Mutex
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorMsgs = append(m.errorMsgs, msg)
}

type mockAnalyst struct {
	text  string
	err   error
	delay time.Duration
	calls int32
}

func (m *mockAnalyst) Analyze(ctx context.Context, trades []*domain.Trade) (string, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.text, m.err
}

type failingRepo struct {
	ports.TradeRepository
	err error
}

func (f *failingRepo) List(ctx context.Context) ([]*domain.Trade, error) { return nil, f.err }

func testConfig() *config.Config {
	return &config.Config{
		AICacheTTL:          time.Minute,
		SizerAccountBalance: 10000,
		SizerRiskPercent:    1,
		SizerLeverage:       1,
		ImportMaxBytes:      1 << 20,
	}
}

func setupService(t *testing.T, cfg *config.Config, analyst ports.TradeAnalyst) (*JournalService, *mockLogger) {
	t.Helper()
	log := &mockLogger{}
	repo, err := memory.NewRepository(memory.Config{Logger: log})
	require.NoError(t, err)

	svc, err := NewJournalService(cfg, log, repo, analyst)
	require.NoError(t, err)

	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	return svc, log
}

func validInput() domain.TradeInput {
	return domain.TradeInput{
		Symbol: " aapl ", EntryDate: "2023-10-01", ExitDate: "2023-10-02", Direction: domain.Long,
		EntryPrice: 150, ExitPrice: 155, Quantity: 100, Fees: 2, Setup: "Breakout",
	}
}

func TestNewJournalService_Dependencies(t *testing.T) {
	log := &mockLogger{}
	repo, _ := memory.NewRepository(memory.Config{Logger: log})

	_, err := NewJournalService(nil, log, repo, &mockAnalyst{})
	assert.Error(t, err)
	_, err = NewJournalService(testConfig(), nil, repo, &mockAnalyst{})
	assert.Error(t, err)
	_, err = NewJournalService(testConfig(), log, repo, nil)
	assert.Error(t, err)

	cfg := testConfig()
	cfg.ImportMaxBytes = 0
	_, err = NewJournalService(cfg, log, repo, &mockAnalyst{})
	assert.Error(t, err)
}

func TestJournalService_AddTrade(t *testing.T) {
	svc, log := setupService(t, testConfig(), &mockAnalyst{})
	ctx := context.Background()

	trade, err := svc.AddTrade(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "id-1", trade.ID)
	assert.Equal(t, "AAPL", trade.Symbol)
	assert.Equal(t, 498.0, trade.PNL)
	assert.InDelta(t, 3.32, trade.ReturnPercent, 1e-9)
	assert.Equal(t, domain.StatusWin, trade.Status)
	assert.Contains(t, log.infoMsgs, "Trade added")

	list, err := svc.ListTrades(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "id-1", list[0].ID)
}

func TestJournalService_AddTradeValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TradeInput)
	}{
		{"missing symbol", func(in *domain.TradeInput) { in.Symbol = "" }},
		{"zero entry price", func(in *domain.TradeInput) { in.EntryPrice = 0 }},
		{"zero quantity", func(in *domain.TradeInput) { in.Quantity = 0 }},
		{"negative fees", func(in *domain.TradeInput) { in.Fees = -1 }},
		{"bad direction", func(in *domain.TradeInput) { in.Direction = "Sideways" }},
		{"bad date", func(in *domain.TradeInput) { in.ExitDate = "10/02/2023" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupService(t, testConfig(), &mockAnalyst{})
			in := validInput()
			tt.mutate(&in)

			_, err := svc.AddTrade(context.Background(), in)
			assert.ErrorIs(t, err, ports.ErrInvalidRequest)

			list, _ := svc.ListTrades(context.Background())
			assert.Empty(t, list)
		})
	}
}

func TestJournalService_AddTradeOverflow(t *testing.T) {
	svc, _ := setupService(t, testConfig(), &mockAnalyst{})
	ctx := context.Background()

	in := validInput()
	in.EntryPrice = 1e308
	in.ExitPrice = 0
	in.Quantity = 1e308

	trade, err := svc.AddTrade(ctx, in)
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	assert.Nil(t, trade)

	list, err := svc.ListTrades(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
}

func TestJournalService_DeleteTrade(t *testing.T) {
	svc, _ := setupService(t, testConfig(), &mockAnalyst{})
	ctx := context.Background()

	trade, err := svc.AddTrade(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTrade(ctx, trade.ID))
	assert.ErrorIs(t, svc.DeleteTrade(ctx, trade.ID), ports.ErrNotFound)
}

func TestJournalService_SeedAndQueries(t *testing.T) {
	svc, _ := setupService(t, testConfig(), &mockAnalyst{})
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	list, err := svc.ListTrades(ctx)
	require.NoError(t, err)
	symbols := make([]string, len(list))
	for i, tr := range list {
		symbols[i] = tr.Symbol
	}
	assert.Equal(t, []string{"SPY", "AMD", "NVDA", "TSLA", "AAPL"}, symbols)

	recent, err := svc.RecentTrades(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "SPY", recent[0].Symbol)

	all, err := svc.RecentTrades(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalTrades)
	assert.InDelta(t, 592.0, stats.NetPnL, 1e-9)
	assert.InDelta(t, 60.0, stats.WinRate, 1e-9)

	curve, err := svc.EquityCurve(ctx)
	require.NoError(t, err)
	require.Len(t, curve, 5)
	assert.Equal(t, "AAPL", curve[0].Symbol)
	assert.InDelta(t, 592.0, curve[4].Equity, 1e-9)

	perf, err := svc.Performance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 252.0, perf.MaxDrawdown, 1e-9)
}

func TestJournalService_ImportCSV(t *testing.T) {
	svc, log := setupService(t, testConfig(), &mockAnalyst{})
	ctx := context.Background()

	_, err := svc.AddTrade(ctx, validInput())
	require.NoError(t, err)

	res, err := svc.ImportCSV(ctx, "Ticker,Date,Side,Entry,Exit,Qty,Fee\nMSFT,2023-01-01,Long,100,110,10,1\nBAD,2023-01-02,Long,0,1,1,0\nQQQ,2023-01-03,Short,50,45,2,0")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Accepted())
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, log.infoMsgs, "CSV import completed")

	export, err := svc.ExportCSV(ctx)
	require.NoError(t, err)
	lines := strings.Split(export.Content, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], `"MSFT"`)
	assert.Contains(t, lines[2], `"QQQ"`)
	assert.Contains(t, lines[3], `"AAPL"`)
	assert.Equal(t, "trades_export_2024-03-15.csv", export.Filename)
}

func TestJournalService_ImportErrors(t *testing.T) {
	cfg := testConfig()
	cfg.ImportMaxBytes = 64
	svc, log := setupService(t, cfg, &mockAnalyst{})
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, "Symbol")
	assert.ErrorIs(t, err, ports.ErrEmptyCSV)

	_, err = svc.ImportReader(ctx, strings.NewReader("Symbol,Entry Price\n,0"))
	assert.ErrorIs(t, err, ports.ErrNoValidTrades)
	assert.NotEmpty(t, log.warnMsgs)

	big := "Symbol,Entry Price\n" + strings.Repeat("AAPL,100\n", 20)
	_, err = svc.ImportReader(ctx, strings.NewReader(big))
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)

	_, err = svc.ExportCSV(ctx)
	assert.ErrorIs(t, err, ports.ErrNothingToExport)
}

func TestJournalService_SizePosition(t *testing.T) {
	svc, _ := setupService(t, testConfig(), &mockAnalyst{})

	req := svc.SizingDefaults()
	req.EntryPrice, req.StopLoss, req.TargetPrice = 150, 145, 160

	plan, err := svc.SizePosition(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 20.0, plan.PositionSize)
	assert.Equal(t, domain.RRFavorable, plan.Grade)
}

func TestJournalService_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		analyst  *mockAnalyst
		seed     bool
		wantText string
		wantOK   bool
	}{
		{
			name:     "success",
			analyst:  &mockAnalyst{text: "### Review\n- Size down"},
			seed:     true,
			wantText: "### Review\n- Size down",
			wantOK:   true,
		},
		{
			name:     "missing credential",
			analyst:  &mockAnalyst{err: ports.ErrMissingCredential},
			seed:     true,
			wantText: MsgMissingCredential,
		},
		{
			name:     "no trades",
			analyst:  &mockAnalyst{err: ports.ErrNoTrades},
			wantText: MsgNoTrades,
		},
		{
			name:     "empty output",
			analyst:  &mockAnalyst{err: ports.ErrEmptyAnalysis},
			seed:     true,
			wantText: MsgEmptyAnalysis,
		},
		{
			name:     "empty string without error",
			analyst:  &mockAnalyst{},
			seed:     true,
			wantText: MsgEmptyAnalysis,
		},
		{
			name:     "transport failure",
			analyst:  &mockAnalyst{err: fmt.Errorf("%w: 503", ports.ErrAnalysisFailed)},
			seed:     true,
			wantText: MsgAnalysisFailed,
		},
		{
			name:     "unexpected error",
			analyst:  &mockAnalyst{err: errors.New("boom")},
			seed:     true,
			wantText: MsgAnalysisFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupService(t, testConfig(), tt.analyst)
			ctx := context.Background()
			if tt.seed {
				_, err := svc.Seed(ctx)
				require.NoError(t, err)
			}

			got := svc.Analyze(ctx)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantOK, got.OK)
			assert.NotEmpty(t, got.Blocks)
		})
	}
}

func TestJournalService_AnalyzeCachesPerTradeSet(t *testing.T) {
	analyst := &mockAnalyst{text: "**Solid week**"}
	svc, _ := setupService(t, testConfig(), analyst)
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	first := svc.Analyze(ctx)
	second := svc.Analyze(ctx)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, []report.Block{{Kind: report.Heading, Text: "Solid week"}}, second.Blocks)
	assert.Equal(t, int32(1), atomic.LoadInt32(&analyst.calls))

	// A changed trade set misses the cache.
	_, err = svc.AddTrade(ctx, validInput())
	require.NoError(t, err)
	third := svc.Analyze(ctx)
	assert.False(t, third.Cached)
	assert.Equal(t, int32(2), atomic.LoadInt32(&analyst.calls))
}

func TestJournalService_AnalyzeFailuresNotCached(t *testing.T) {
	analyst := &mockAnalyst{err: errors.New("boom")}
	svc, log := setupService(t, testConfig(), analyst)
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	svc.Analyze(ctx)
	svc.Analyze(ctx)
	assert.Equal(t, int32(2), atomic.LoadInt32(&analyst.calls))
	assert.Len(t, log.errorMsgs, 2)
}

func TestJournalService_AnalyzeCacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AICacheTTL = 0
	analyst := &mockAnalyst{text: "ok"}
	svc, _ := setupService(t, cfg, analyst)
	ctx := context.Background()

	svc.Analyze(ctx)
	svc.Analyze(ctx)
	assert.Equal(t, int32(2), atomic.LoadInt32(&analyst.calls))
}

func TestJournalService_AnalyzeSharesConcurrentCalls(t *testing.T) {
	analyst := &mockAnalyst{text: "shared", delay: 100 * time.Millisecond}
	svc, _ := setupService(t, testConfig(), analyst)
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := svc.Analyze(ctx)
			assert.Equal(t, "shared", got.Text)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&analyst.calls))
}

func TestJournalService_RepositoryFailure(t *testing.T) {
	log := &mockLogger{}
	svc, err := NewJournalService(testConfig(), log, &failingRepo{err: errors.New("disk gone")}, &mockAnalyst{text: "x"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Stats(ctx)
	assert.Error(t, err)
	_, err = svc.ListTrades(ctx)
	assert.Error(t, err)

	got := svc.Analyze(ctx)
	assert.Equal(t, MsgAnalysisFailed, got.Text)
	assert.False(t, got.OK)
}
