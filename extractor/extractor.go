// Package extractor pulls a restaurant JSON array out of free form
// language model output. Model text is not guaranteed to be well formed,
// so extraction is a sequence of increasingly forgiving attempts and a
// malformed entry never poisons the rest of the batch.
package extractor

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

	// Conservative textual repairs applied before parsing.
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	singleQuotedRe  = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'`)

	// objectRe grabs candidate {...} objects for the per object salvage
	// pass. It does not handle nested braces; the payloads in scope are
	// flat restaurant objects.
	objectRe = regexp.MustCompile(`\{[^{}]*\}`)
)

// RestaurantArray extracts a list of objects from text. It never fails:
// when every attempt is exhausted it returns an empty slice and the
// caller falls back. Objects must at minimum carry a "name" field.
func RestaurantArray(text string) []map[string]any {
	text = stripCodeFences(text)

	candidate := sliceArray(text)
	if candidate != "" {
		// Well formed input parses as-is. Repairs run only on failure:
		// the single quote rewrite would mangle apostrophes inside valid
		// double quoted strings ("Joe's Pizza" and friends).
		if objs := parseArray(candidate); len(objs) > 0 {
			return objs
		}

		if objs := parseArray(repair(candidate)); len(objs) > 0 {
			return objs
		}
	}

	// Whole array parse failed. Salvage whatever individual objects
	// still parse; skipping a broken one is fine.
	return salvageObjects(text)
}

func stripCodeFences(text string) string {
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	return strings.ReplaceAll(text, "```", "")
}

// sliceArray cuts text down to the span between the first '[' and the
// last ']'. Empty result means there is no array to try.
func sliceArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")

	if start < 0 || end <= start {
		return ""
	}

	return text[start : end+1]
}

func repair(s string) string {
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = bareKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = singleQuotedRe.ReplaceAllString(s, `"$1"`)

	return s
}

func parseArray(s string) []map[string]any {
	var raw []map[string]any

	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil
	}

	ans := make([]map[string]any, 0, len(raw))

	for _, obj := range raw {
		if hasName(obj) {
			ans = append(ans, obj)
		}
	}

	return ans
}

func salvageObjects(text string) []map[string]any {
	var ans []map[string]any

	for _, m := range objectRe.FindAllString(text, -1) {
		var obj map[string]any

		if err := json.Unmarshal([]byte(m), &obj); err != nil {
			if err := json.Unmarshal([]byte(repair(m)), &obj); err != nil {
				continue
			}
		}

		if hasName(obj) {
			ans = append(ans, obj)
		}
	}

	if ans == nil {
		return []map[string]any{}
	}

	return ans
}

func hasName(obj map[string]any) bool {
	name, ok := obj["name"].(string)

	return ok && strings.TrimSpace(name) != ""
}
