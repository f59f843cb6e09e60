package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"tradeJournal/internal/domain"
)

var promptTemplate = template.Must(template.New("mentor").Parse(`Act as a professional trading mentor and risk manager.
Review the following trading journal data (JSON format).

Data:
{{.Data}}

Please provide a concise analysis covering:
1. Overall performance observation.
2. Pattern recognition: What setups are working best? What aren't?
3. Psychological analysis based on notes (if any) and P&L swings.
4. Actionable advice for the next trading session.

Keep the tone professional, encouraging, but strict on risk management. Format with Markdown.
`))

// buildPrompt renders the mentor prompt around the JSON trade summary.
func buildPrompt(trades []*domain.Trade) (string, error) {
	data, err := json.Marshal(domain.Summarize(trades))
	if err != nil {
		return "", fmt.Errorf("failed to marshal trade summary: %w", err)
	}

	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, struct{ Data string }{string(data)}); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}
