package tradecsv

import "strings"

// splitLines splits text on CRLF or LF.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// splitRow splits a line on commas that are not inside a double-quoted field.
// A comma is a delimiter when an even number of quote characters follow it
// on the rest of the line. Cells are trimmed and unquoted.
func splitRow(line string) []string {
	remaining := strings.Count(line, `"`)

	cells := make([]string, 0, 16)
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			remaining--
		case ',':
			if remaining%2 == 0 {
				cells = append(cells, cleanCell(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(cells, cleanCell(line[start:]))
}

func cleanCell(cell string) string {
	cell = strings.TrimSpace(cell)
	quoted := len(cell) >= 2 && cell[0] == '"' && cell[len(cell)-1] == '"'
	cell = unquote(cell)
	if quoted {
		cell = strings.ReplaceAll(cell, `""`, `"`)
	}
	return cell
}

// unquote removes one leading and one trailing double quote, independently.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
