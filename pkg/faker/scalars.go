package faker

import (
	"time"
)

// epoch anchors generated dates so they never depend on the wall clock.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// dateSpan is the window after epoch that generated dates fall into.
const dateSpan = 5 * 365 * 24 * time.Hour

// Scalar returns a value for a custom scalar by its schema name. ok is false
// when the scalar is not one of the well-known names; callers then fall back
// to Placeholder.
func (g *Generator) Scalar(typeName, fieldName string) (value interface{}, ok bool) {
	switch typeName {
	case "DateTime", "Timestamp", "Instant":
		return g.Time().Format(time.RFC3339), true
	case "Date":
		return g.Time().Format(time.DateOnly), true
	case "Time", "LocalTime":
		return g.Time().Format(time.TimeOnly), true
	case "JSON", "JSONObject", "Map", "Any":
		return map[string]interface{}{jsonKey(fieldName): g.pick(words)}, true
	case "URL", "URI", "Url":
		return g.URL(), true
	case "UUID", "Uuid":
		return g.ID(), true
	case "Email", "EmailAddress":
		return g.Email(), true
	case "BigInt", "Long", "Int64":
		return int64(g.rng.Uint32()), true
	case "Decimal", "BigDecimal":
		return g.Float(), true
	}
	return nil, false
}

// Time returns an instant within five years after 2020-01-01 UTC, truncated
// to whole seconds.
func (g *Generator) Time() time.Time {
	offset := time.Duration(g.rng.Int64N(int64(dateSpan / time.Second)))
	return epoch.Add(offset * time.Second)
}

func jsonKey(fieldName string) string {
	if fieldName == "" {
		return "value"
	}
	return fieldName
}
