package key

import "strings"

// aliasMap maps platform-specific modifier names (lowercase) to canonical names.
var aliasMap = map[string]string{
	"opt":     "alt",
	"option":  "alt",
	"control": "ctrl",
	"cmd":     "meta",
	"command": "meta",
}

// CanonicalToken lower-cases a single key token and resolves modifier aliases.
func CanonicalToken(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := aliasMap[token]; ok {
		return canonical
	}
	return token
}

// NormalizeCombo canonicalizes one "+"-joined combination string.
// Example: "Cmd+K" -> "meta+k".
func NormalizeCombo(combo string) string {
	parts := strings.Split(combo, "+")
	for i, p := range parts {
		parts[i] = CanonicalToken(p)
	}
	return strings.Join(parts, "+")
}

// Normalize canonicalizes a list of combination strings.
// The result always has the same length as the input.
func Normalize(combos []string) []string {
	normalized := make([]string, len(combos))
	for i, c := range combos {
		normalized[i] = NormalizeCombo(c)
	}
	return normalized
}

// Lower lower-cases a list of key tokens without alias resolution.
// Sequence registration uses this weaker form of canonicalization.
func Lower(keys []string) []string {
	lowered := make([]string, len(keys))
	for i, k := range keys {
		lowered[i] = strings.ToLower(k)
	}
	return lowered
}
