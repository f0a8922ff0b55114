package enhancement

import (
	"regexp"
	"strings"
)

// numberPattern matches quantified claims: percentages, multipliers, counts,
// currency amounts.
var numberPattern = regexp.MustCompile(`\$?\d+(?:[.,]\d+)*(?:%|x|k|K|M|B)?`)

// FactFlag reports a quantified claim in enhanced text that the original
// text does not contain.
type FactFlag struct {
	DurableID string `json:"durable_id,omitempty"`
	Claim     string `json:"claim"`
}

// VerifyFacts is the optional post-hoc anti-fabrication check: every number
// appearing in enhanced text must also appear in the corresponding original.
// It flags, it never blocks. Preservation of prose facts is prompt-enforced
// and cannot be verified mechanically, but invented metrics can be caught.
func VerifyFacts(originals map[string]string, result *EnhancePair) []FactFlag {
	if result == nil {
		return nil
	}

	var flags []FactFlag
	for id, enhanced := range result.Enhanced {
		original := originals[id]
		for _, claim := range unsupportedNumbers(original, enhanced) {
			flags = append(flags, FactFlag{DurableID: id, Claim: claim})
		}
	}
	return flags
}

// EnhancePair maps durable ids to their enhanced text for fact checking
type EnhancePair struct {
	Enhanced map[string]string
}

// unsupportedNumbers returns numbers present in enhanced but absent from
// original, deduplicated in order of appearance.
func unsupportedNumbers(original, enhanced string) []string {
	originalNumbers := make(map[string]bool)
	for _, n := range numberPattern.FindAllString(original, -1) {
		originalNumbers[normalizeNumber(n)] = true
	}

	var unsupported []string
	seen := make(map[string]bool)
	for _, n := range numberPattern.FindAllString(enhanced, -1) {
		key := normalizeNumber(n)
		if originalNumbers[key] || seen[key] {
			continue
		}
		seen[key] = true
		unsupported = append(unsupported, n)
	}
	return unsupported
}

// normalizeNumber strips formatting so "1,000" and "1000" compare equal
func normalizeNumber(n string) string {
	n = strings.ToLower(n)
	n = strings.ReplaceAll(n, ",", "")
	n = strings.TrimPrefix(n, "$")
	n = strings.TrimRight(n, "%xkmb")
	return n
}
