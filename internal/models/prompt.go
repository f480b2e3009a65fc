package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PromptKind tags the payload shape of a Prompt.
type PromptKind string

const (
	PromptText       PromptKind = "text"
	PromptGrid       PromptKind = "grid"
	PromptStructured PromptKind = "structured"
)

// Prompt is a question payload. Exactly one of Text, Grid or Structured is
// meaningful, selected by Kind. Grid cells are strings and the missing cell
// is the empty string.
type Prompt struct {
	Kind       PromptKind
	Text       string
	Grid       [][]string
	Structured *StructuredPrompt
}

// StructuredPrompt carries the parts of logic-style questions.
type StructuredPrompt struct {
	Context    string   `json:"context,omitempty"`
	Premises   []string `json:"premises,omitempty"`
	Statements []string `json:"statements,omitempty"`
	Conclusion string   `json:"conclusion,omitempty"`
	Question   string   `json:"question,omitempty"`
}

func TextPrompt(s string) Prompt {
	return Prompt{Kind: PromptText, Text: s}
}

func GridPrompt(rows [][]string) Prompt {
	return Prompt{Kind: PromptGrid, Grid: rows}
}

// EmptyCells counts the blank cells of a grid prompt.
func (p Prompt) EmptyCells() int {
	n := 0
	for _, row := range p.Grid {
		for _, cell := range row {
			if cell == "" {
				n++
			}
		}
	}
	return n
}

func (p Prompt) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PromptGrid:
		rows := make([][]*string, len(p.Grid))
		for i, row := range p.Grid {
			rows[i] = make([]*string, len(row))
			for j := range row {
				if row[j] != "" {
					rows[i][j] = &row[j]
				}
			}
		}
		return json.Marshal(rows)
	case PromptStructured:
		if p.Structured == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(p.Structured)
	default:
		return json.Marshal(p.Text)
	}
}

// UnmarshalJSON selects the variant from the JSON shape: a string, an array
// of rows with exactly one null or empty cell, or an object.
func (p *Prompt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Prompt{Kind: PromptText}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = TextPrompt(s)
		return nil
	case '[':
		var raw [][]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("grid prompt: %w", err)
		}
		grid := make([][]string, len(raw))
		for i, row := range raw {
			grid[i] = make([]string, len(row))
			for j, cell := range row {
				v, err := gridCell(cell)
				if err != nil {
					return fmt.Errorf("grid prompt cell [%d][%d]: %w", i, j, err)
				}
				grid[i][j] = v
			}
		}
		gp := GridPrompt(grid)
		if n := gp.EmptyCells(); n != 1 {
			return fmt.Errorf("grid prompt must have exactly one empty cell, found %d", n)
		}
		*p = gp
		return nil
	case '{':
		var sp StructuredPrompt
		if err := json.Unmarshal(data, &sp); err != nil {
			return fmt.Errorf("structured prompt: %w", err)
		}
		*p = Prompt{Kind: PromptStructured, Structured: &sp}
		return nil
	default:
		return fmt.Errorf("unsupported prompt payload %q", string(data))
	}
}

func gridCell(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
