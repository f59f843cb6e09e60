package tradecsv

import (
	"strconv"
	"strings"
	"time"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// ExportHeaders is the fixed column layout of exported files.
var ExportHeaders = []string{
	"ID", "Symbol", "Entry Date", "Exit Date", "Direction", "Entry Price",
	"Exit Price", "Quantity", "Fees", "Setup", "Notes", "PnL", "Status",
}

// Export renders the trades, in the given order, as CSV text. Every data
// field is quoted with embedded quotes doubled; rows are joined by "\n".
// Returns ports.ErrNothingToExport for an empty collection.
func Export(trades []*domain.Trade) (string, error) {
	if len(trades) == 0 {
		return "", ports.ErrNothingToExport
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(ExportHeaders, ","))

	for _, t := range trades {
		sb.WriteByte('\n')
		writeRow(&sb,
			t.ID,
			t.Symbol,
			t.EntryDate,
			t.ExitDate,
			string(t.Direction),
			formatFloat(t.EntryPrice),
			formatFloat(t.ExitPrice),
			formatFloat(t.Quantity),
			formatFloat(t.Fees),
			t.Setup,
			t.Notes,
			formatFloat(t.PNL),
			string(t.Status),
		)
	}
	return sb.String(), nil
}

// ExportFilename returns the download name for an export made at now.
func ExportFilename(now time.Time) string {
	return "trades_export_" + now.UTC().Format(domain.DateLayout) + ".csv"
}

func writeRow(sb *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
