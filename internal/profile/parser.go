// Package profile extracts load-profile records from an R2 P.nn data
// block, recognizing both dialects described in spec §4.F: inline-header
// records ("P.01(ts)(v1)(v2)(status)") and block-header records preceded by
// an "LPCH:"/"LPC:" column-semantics preamble.
package profile

import (
	"strconv"
	"strings"
)

// Parse splits body into lines and extracts one Record per data line,
// skipping LPCH:/LPC: preamble lines and dropping records with no
// timestamp or with neither values nor a status.
func Parse(body string) []Record {
	lines := strings.FieldsFunc(body, func(r rune) bool { return r == '\r' || r == '\n' })

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		line = stripControlBytes(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "LPCH:") || strings.HasPrefix(line, "LPC:") {
			continue // column-semantics preamble, not a record
		}

		groups := extractGroups(line)
		if len(groups) == 0 {
			continue // no timestamp
		}

		rec := Record{Timestamp: groups[0]}
		for _, group := range groups[1:] {
			for _, subfield := range strings.Split(group, ",") {
				subfield = stripUnitSuffix(subfield)
				if subfield == "" {
					continue
				}

				// A decimal point disambiguates a numeric reading from a
				// hex status word: status words (e.g. "00") are valid hex
				// digits too, so without this tiebreak every all-digit
				// status would silently parse as a float value instead.
				if strings.Contains(subfield, ".") {
					if v, err := strconv.ParseFloat(subfield, 64); err == nil {
						rec.Values = append(rec.Values, v)
						continue
					}
				}
				if isHex(subfield) && len(subfield) <= 16 {
					rec.Status = subfield
					continue
				}
				if v, err := strconv.ParseFloat(subfield, 64); err == nil {
					rec.Values = append(rec.Values, v)
				}
			}
		}

		if len(rec.Values) == 0 && rec.Status == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// stripControlBytes removes ASCII control bytes (anything below 0x20 except
// the comma/printables already handled by line splitting).
func stripControlBytes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// extractGroups walks line from its first '(' and returns every top-level
// parenthesized group's inner text, using a depth counter so a group may
// itself contain balanced parentheses.
func extractGroups(line string) []string {
	start := strings.IndexByte(line, '(')
	if start < 0 {
		return nil
	}

	var groups []string
	depth := 0
	groupStart := -1
	for i := start; i < len(line); i++ {
		switch line[i] {
		case '(':
			if depth == 0 {
				groupStart = i + 1
			}
			depth++
		case ')':
			if depth == 0 {
				continue // stray close, ignore
			}
			depth--
			if depth == 0 && groupStart >= 0 {
				groups = append(groups, line[groupStart:i])
				groupStart = -1
			}
		}
	}
	return groups
}

func stripUnitSuffix(s string) string {
	if star := strings.IndexByte(s, '*'); star >= 0 {
		return strings.TrimSpace(s[:star])
	}
	return strings.TrimSpace(s)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') && !(r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}
