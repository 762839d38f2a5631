package domain

import (
	"strings"
)

// extractor looks for a value in a loosely typed session record.
type extractor func(record map[string]any) string

// tokenExtractors lists the places a token may live, in lookup order.
func tokenExtractors() []extractor {
	return []extractor{
		stringField("accessToken"),
		stringField("token"),
		nested("data", ExtractToken),
	}
}

// userIDExtractors lists the places a user id may live, in lookup order.
func userIDExtractors() []extractor {
	return []extractor{
		userField(func(r map[string]any) any { return r["user"] }),
		userField(func(r map[string]any) any {
			data, ok := r["data"].(map[string]any)
			if !ok {
				return nil
			}
			return data["user"]
		}),
		nested("data", ExtractUserID),
	}
}

// ExtractToken returns the access token held by a decoded session record,
// or "" when there is none.
func ExtractToken(record any) string {
	return firstOf(record, tokenExtractors())
}

// ExtractUserID returns the user id held by a decoded session record,
// or "" when there is none.
func ExtractUserID(record any) string {
	return firstOf(record, userIDExtractors())
}

func firstOf(record any, extractors []extractor) string {
	m, ok := record.(map[string]any)
	if !ok {
		return ""
	}

	for _, extract := range extractors {
		if v := extract(m); v != "" {
			return v
		}
	}

	return ""
}

func stringField(key string) extractor {
	return func(r map[string]any) string {
		return trimmed(r[key])
	}
}

func nested(key string, next func(any) string) extractor {
	return func(r map[string]any) string {
		return next(r[key])
	}
}

func userField(candidate func(map[string]any) any) extractor {
	return func(r map[string]any) string {
		user, ok := candidate(r).(map[string]any)
		if !ok {
			return ""
		}

		id, ok := user["_id"]
		if !ok || id == nil {
			id = user["id"]
		}

		return trimmed(id)
	}
}

func trimmed(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(s)
}
