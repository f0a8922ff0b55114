package remap

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-generator/internal/types"
)

func makeItems(n int) []types.ContentItem {
	items := make([]types.ContentItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, types.ContentItem{
			Kind:      types.KindExperience,
			DurableID: fmt.Sprintf("exp-%032d", i),
			Title:     fmt.Sprintf("Role %d", i),
		})
	}
	return items
}

func TestBuild_SequentialSurrogates(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			table, facing := Build(makeItems(n))

			require.Len(t, facing, n)
			assert.Equal(t, n, table.Len())

			seen := make(map[int]bool)
			for i, item := range facing {
				assert.Equal(t, i+1, item.Surrogate, "surrogates are 1..n in input order")
				assert.False(t, seen[item.Surrogate], "no duplicate surrogates")
				seen[item.Surrogate] = true
			}
		})
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	table, facing := Build(nil)

	assert.Empty(t, facing)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.TranslateBack(nil))
}

func TestTranslateBack_RoundTrip(t *testing.T) {
	items := makeItems(5)
	table, facing := Build(items)

	tokens := make([]any, 0, len(facing))
	for _, item := range facing {
		tokens = append(tokens, item.Surrogate)
	}

	ids := table.TranslateBack(tokens)

	require.Len(t, ids, len(items))
	for i, item := range items {
		assert.Equal(t, item.DurableID, ids[i], "round trip is the identity on durable ids")
	}
	assert.Empty(t, table.Dropped())
}

func TestTranslateBack_LenientTokenKinds(t *testing.T) {
	table, _ := Build(makeItems(3))

	// Typical decoded JSON: float64 numbers, numeral strings, json.Number
	ids := table.TranslateBack([]any{float64(2), "3", json.Number("1")})

	require.Len(t, ids, 3)
	assert.Equal(t, "exp-00000000000000000000000000000001", ids[0])
	assert.Equal(t, "exp-00000000000000000000000000000002", ids[1])
	assert.Equal(t, "exp-00000000000000000000000000000000", ids[2])
}

func TestTranslateBack_DropsGarbageWithoutError(t *testing.T) {
	table, _ := Build(makeItems(2))

	ids := table.TranslateBack([]any{
		float64(1),
		"not-a-number",
		float64(99),      // out of range
		float64(1.5),     // non-integral
		map[string]any{}, // wrong type entirely
		"2",
	})

	require.Len(t, ids, 2)
	assert.Equal(t, "exp-00000000000000000000000000000000", ids[0])
	assert.Equal(t, "exp-00000000000000000000000000000001", ids[1])
	assert.Len(t, table.Dropped(), 4)
}

func TestTranslateBack_WhitespaceNumeral(t *testing.T) {
	table, _ := Build(makeItems(1))

	ids := table.TranslateBack([]any{" 1 "})
	require.Len(t, ids, 1)
}
