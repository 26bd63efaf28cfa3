package lang

import (
	"sort"
	"strconv"
	"strings"
)

// The service stores translations for exactly two languages.
const (
	English = "en"
	Arabic  = "ar"
)

// Default is the fallback language when negotiation yields nothing usable.
const Default = English

// Supported reports whether code names one of the stored languages.
func Supported(code string) bool {
	return code == English || code == Arabic
}

// Normalize lowercases a language code and strips any region designator,
// so "AR-SA" resolves to "ar". Unknown codes come back unchanged (lowercased)
// for the caller to reject or fall through on.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx != -1 {
		code = code[:idx]
	}
	return code
}

// Resolve picks the request language from an explicit ?lang parameter and
// the Accept-Language header, in that order, falling back to English.
func Resolve(explicit, acceptHeader string) string {
	if code := Normalize(explicit); Supported(code) {
		return code
	}
	for _, code := range ParseAcceptLanguage(acceptHeader) {
		if Supported(code) {
			return code
		}
	}
	return Default
}

// ParseAcceptLanguage returns the header's language codes normalised and
// ordered by descending q-weight, ties broken by position.
func ParseAcceptLanguage(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	type entry struct {
		code   string
		weight float64
		index  int
	}

	parts := strings.Split(header, ",")
	entries := make([]entry, 0, len(parts))

	for idx, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}

		weight := 1.0
		code := segment

		if semi := strings.Index(segment, ";"); semi != -1 {
			code = strings.TrimSpace(segment[:semi])
			for _, param := range strings.Split(segment[semi+1:], ";") {
				kv := strings.SplitN(strings.TrimSpace(param), "=", 2)
				if len(kv) != 2 || kv[0] != "q" {
					continue
				}
				if parsed, err := strconv.ParseFloat(kv[1], 64); err == nil {
					weight = parsed
				}
			}
		}

		normalized := Normalize(code)
		if normalized == "" || normalized == "*" {
			continue
		}

		entries = append(entries, entry{code: normalized, weight: weight, index: idx})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].weight == entries[j].weight {
			return entries[i].index < entries[j].index
		}
		return entries[i].weight > entries[j].weight
	})

	result := make([]string, 0, len(entries))
	for _, item := range entries {
		result = append(result, item.code)
	}
	return result
}
