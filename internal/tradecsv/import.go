// Package tradecsv imports trades from broker CSV exports with heuristic
// column detection, and exports the journal to a fixed CSV layout.
package tradecsv

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/pnl"
	"tradeJournal/internal/ports"
)

// ParseOptions customises Parse. Zero values use the defaults.
type ParseOptions struct {
	Now   func() time.Time // Clock used for missing or invalid dates (default time.Now)
	NewID func() string    // Identifier generator (default uuid.NewString)
}

// ImportResult holds the trades accepted from a CSV file.
type ImportResult struct {
	Trades  []*domain.Trade // Accepted trades in file order
	Skipped int             // Non-blank rows rejected by the acceptance filter
}

// Accepted returns the number of imported trades.
func (r *ImportResult) Accepted() int {
	return len(r.Trades)
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Parse reads trades from CSV text whose header names are not fixed.
// Rows without a resolvable symbol, with a non-positive entry price or whose
// P&L overflows are skipped silently. Returns ports.ErrEmptyCSV when the text has no data
// line and ports.ErrNoValidTrades when no row is accepted.
func Parse(text string, opts ParseOptions) (*ImportResult, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, ports.ErrEmptyCSV
	}

	headers := splitRow(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}
	cols := resolveColumns(headers)
	today := now().UTC().Format(domain.DateLayout)

	result := &ImportResult{Trades: make([]*domain.Trade, 0, len(lines)-1)}
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		input := parseRow(cols, splitRow(line), today)
		if input.Symbol == domain.UnknownSymbol || input.EntryPrice <= 0 {
			result.Skipped++
			continue
		}
		trade := pnl.NewTrade(newID(), input, true)
		if !trade.Finite() {
			result.Skipped++
			continue
		}
		result.Trades = append(result.Trades, trade)
	}

	if len(result.Trades) == 0 {
		return nil, fmt.Errorf("%w (%d rows skipped)", ports.ErrNoValidTrades, result.Skipped)
	}
	return result, nil
}

func parseRow(cols columnIndex, row []string, today string) domain.TradeInput {
	symbol := strings.ToUpper(cols.value(row, fieldSymbol))
	if symbol == "" {
		symbol = domain.UnknownSymbol
	}

	direction := domain.Long
	if strings.Contains(strings.ToLower(cols.value(row, fieldDirection)), "short") {
		direction = domain.Short
	}

	entryDate, exitDate := parseDates(cols.value(row, fieldEntryDate), cols.value(row, fieldExitDate), today)

	return domain.TradeInput{
		Symbol:     symbol,
		EntryDate:  entryDate,
		ExitDate:   exitDate,
		Direction:  direction,
		EntryPrice: parseNumber(cols.value(row, fieldEntryPrice), 0),
		ExitPrice:  parseNumber(cols.value(row, fieldExitPrice), 0),
		Quantity:   parseNumber(cols.value(row, fieldQuantity), 1),
		Fees:       parseNumber(cols.value(row, fieldFees), 0),
		Setup:      cols.value(row, fieldSetup),
		Notes:      cols.value(row, fieldNotes),
	}
}

// parseDates normalises both dates to YYYY-MM-DD. A missing entry date is
// today and a missing exit date is the entry date. If either value fails to
// parse, both fall back to today.
func parseDates(entryRaw, exitRaw, today string) (string, string) {
	entry := today
	if entryRaw != "" {
		d, err := parseDate(entryRaw)
		if err != nil {
			return today, today
		}
		entry = d
	}

	exit := entry
	if exitRaw != "" {
		d, err := parseDate(exitRaw)
		if err != nil {
			return today, today
		}
		exit = d
	}
	return entry, exit
}

func parseDate(s string) (string, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(domain.DateLayout), nil
}

// parseNumber parses the leading decimal number of s, ignoring any trailing
// text ("12.5 USD" is 12.5). Unparseable input, 0 and values outside the
// float64 range yield def.
func parseNumber(s string, def float64) float64 {
	prefix := numberPrefix.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return def
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil || d.IsZero() {
		return def
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return def
	}
	return f
}
