// Package remap translates durable content ids to small sequential integers
// before content is shown to an LLM, and back again afterwards. Models echo
// short integers reliably but corrupt or invent long opaque ids, so each
// ranking call gets its own throwaway integer alphabet.
package remap

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-generator/internal/types"
)

// Item is the LLM-facing view of a content item: display fields tagged with
// the integer surrogate instead of the durable id.
type Item struct {
	Surrogate    int      `json:"id"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Table is the bidirectional surrogate mapping for a single ranking call.
// It is never persisted; discard it once translation back is done.
type Table struct {
	toDurable map[int]string
	dropped   []string
}

// Build assigns surrogates 1..n in input order and returns the table together
// with the LLM-facing item list. An empty input yields an empty list.
func Build(items []types.ContentItem) (*Table, []Item) {
	table := &Table{toDurable: make(map[int]string, len(items))}
	facing := make([]Item, 0, len(items))

	for i, item := range items {
		surrogate := i + 1
		table.toDurable[surrogate] = item.DurableID
		facing = append(facing, Item{
			Surrogate:    surrogate,
			Title:        item.Title,
			Company:      item.Company,
			Description:  item.Description,
			Technologies: item.Technologies,
		})
	}

	return table, facing
}

// TranslateBack converts surrogate tokens from a decoded LLM response into
// durable ids, preserving order. Tokens may arrive as JSON numbers, numeral
// strings, or garbage; anything that fails integer coercion or maps to no
// table entry is dropped and recorded as a diagnostic, never raised as an
// error. Ranking degrades gracefully on a bad token instead of failing.
func (t *Table) TranslateBack(tokens []any) []string {
	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		surrogate, ok := coerceInt(token)
		if !ok {
			t.dropped = append(t.dropped, fmt.Sprintf("unparseable token %v", token))
			continue
		}
		durable, ok := t.toDurable[surrogate]
		if !ok {
			t.dropped = append(t.dropped, fmt.Sprintf("unknown surrogate %d", surrogate))
			continue
		}
		ids = append(ids, durable)
	}
	return ids
}

// Len returns the number of mapped items
func (t *Table) Len() int {
	return len(t.toDurable)
}

// Dropped returns diagnostics for tokens discarded during translation
func (t *Table) Dropped() []string {
	return t.dropped
}

// coerceInt leniently parses a decoded JSON token into an integer surrogate
func coerceInt(token any) (int, bool) {
	switch v := token.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		n := int(v)
		if float64(n) != v {
			return 0, false
		}
		return n, true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
