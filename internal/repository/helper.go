package repository

import (
	"fmt"
	"time"
)

// sqliteTimeLayouts are the formats the SQLite driver hands back for DATE
// and DATETIME columns, most specific first.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a date or datetime string from a SQLite column.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", value)
}
