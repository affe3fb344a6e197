package catalog

import (
	"regexp"
	"strconv"
)

// Field is a field declaration to append to a record.
type Field struct {
	Key     string
	literal string
}

// String returns a field holding a quoted string value.
func String(key, value string) Field {
	return Field{Key: key, literal: strconv.Quote(value)}
}

// Number returns a field holding a number with fixed 6-decimal formatting.
func Number(key string, value float64) Field {
	return Field{Key: key, literal: strconv.FormatFloat(value, 'f', 6, 64)}
}

// Declaration returns the field as written in the catalog, e.g. `lat: -8.123000`.
func (f Field) Declaration() string {
	return f.Key + ": " + f.literal
}

func (f Field) declaredIn(s string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(f.Key) + `\s*:`).MatchString(s)
}
