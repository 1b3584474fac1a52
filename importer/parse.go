package importer

import "strings"

// ParseLine turns one pipe-delimited line into a value tuple aligned to a
// table's column count. Short lines are padded with NULLs, excess trailing
// fields are dropped (tolerance for malformed trailing delimiters), fields
// are trimmed, and empty fields become NULL. No type coercion happens here;
// values stay text and typing is the reader's concern.
func ParseLine(line string, columnCount int) []any {
	fields := strings.Split(line, "|")
	record := make([]any, columnCount)
	for i := 0; i < columnCount && i < len(fields); i++ {
		v := strings.TrimSpace(fields[i])
		if v == "" {
			continue
		}
		record[i] = v
	}
	return record
}
