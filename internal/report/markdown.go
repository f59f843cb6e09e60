// Package report turns the free-text analysis returned by the AI collaborator
// into typed blocks and renders them for a terminal.
package report

import (
	"io"
	"strings"
	"text/template"
)

// BlockKind classifies one line of analysis text.
type BlockKind string

const (
	Subheading BlockKind = "subheading"
	Heading    BlockKind = "heading"
	Bullet     BlockKind = "bullet"
	Numbered   BlockKind = "numbered"
	Paragraph  BlockKind = "paragraph"
)

// Block is a single rendered line.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// ParseBlocks classifies every line of text. Rules are checked in order and
// the first match wins; blank lines become empty paragraphs.
func ParseBlocks(text string) []Block {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classify(line))
	}
	return blocks
}

func classify(line string) Block {
	switch {
	case strings.HasPrefix(line, "###"):
		return Block{Kind: Subheading, Text: strings.Replace(line, "###", "", 1)}
	case strings.HasPrefix(line, "**"), strings.HasPrefix(line, "##"):
		text := strings.ReplaceAll(line, "**", "")
		return Block{Kind: Heading, Text: strings.Replace(text, "##", "", 1)}
	case strings.HasPrefix(line, "- "):
		return Block{Kind: Bullet, Text: strings.Replace(line, "- ", "", 1)}
	case strings.HasPrefix(line, "1. "):
		return Block{Kind: Numbered, Text: line}
	default:
		return Block{Kind: Paragraph, Text: line}
	}
}

var textTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"trim":  strings.TrimSpace,
	"upper": strings.ToUpper,
}).Parse(`{{range .}}{{if eq .Kind "subheading"}}
== {{trim .Text}} ==
{{else if eq .Kind "heading"}}
{{upper (trim .Text)}}
{{else if eq .Kind "bullet"}}  * {{.Text}}
{{else if eq .Kind "numbered"}}  {{.Text}}
{{else}}{{.Text}}
{{end}}{{end}}`))

// RenderText writes the blocks as plain terminal text.
func RenderText(w io.Writer, blocks []Block) error {
	return textTemplate.Execute(w, blocks)
}
