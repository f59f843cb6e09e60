package tradecsv

import "strings"

// field identifies a logical trade column in an imported file.
type field int

const (
	fieldSymbol field = iota
	fieldDirection
	fieldEntryDate
	fieldExitDate
	fieldEntryPrice
	fieldExitPrice
	fieldQuantity
	fieldFees
	fieldSetup
	fieldNotes
	fieldCount
)

// headerCandidates lists, per field, the header substrings accepted for it,
// highest priority first. Matching is order dependent: "date" also matches
// "exit date", so the generic candidates come last.
var headerCandidates = [fieldCount][]string{
	fieldSymbol:     {"symbol", "ticker"},
	fieldDirection:  {"direction", "side", "type"},
	fieldEntryDate:  {"entry date", "open date", "date"},
	fieldExitDate:   {"exit date", "close date"},
	fieldEntryPrice: {"entry price", "price in", "entry"},
	fieldExitPrice:  {"exit price", "price out", "exit"},
	fieldQuantity:   {"quantity", "qty", "size", "shares"},
	fieldFees:       {"fees", "fee", "comm", "commission"},
	fieldSetup:      {"setup", "strategy"},
	fieldNotes:      {"notes", "comments"},
}

// columnIndex maps each field to its column position, -1 when unresolved.
type columnIndex [fieldCount]int

// resolveColumns picks a column for every field. Candidates are tried in
// priority order and, for a candidate, the left-most header containing it wins.
func resolveColumns(headers []string) columnIndex {
	var idx columnIndex
	for f := field(0); f < fieldCount; f++ {
		idx[f] = findHeader(headers, headerCandidates[f])
	}
	return idx
}

func findHeader(headers []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, h := range headers {
			if strings.Contains(h, candidate) {
				return i
			}
		}
	}
	return -1
}

// value returns the row cell for the field, or "" when the column is
// unresolved or the row is short.
func (idx columnIndex) value(row []string, f field) string {
	i := idx[f]
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
