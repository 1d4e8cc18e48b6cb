package iec21

import "strings"

// ParseObisItem parses one OBIS line of the form "code(value)" or
// "code(value*unit)". It returns ok=false if no "(...)" parenthesized
// payload is found.
func ParseObisItem(line string) (ObisItem, bool) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return ObisItem{}, false
	}
	closeIdx := strings.LastIndexByte(line, ')')
	if closeIdx < 0 || closeIdx <= open {
		return ObisItem{}, false
	}

	code := strings.TrimSpace(line[:open])
	payload := line[open+1 : closeIdx]

	value, unit := payload, ""
	if star := strings.IndexByte(payload, '*'); star >= 0 {
		value = payload[:star]
		unit = payload[star+1:]
	}

	return ObisItem{Code: code, Value: value, Unit: unit}, true
}

// ParseDataBlock splits body on line terminators and applies ParseObisItem
// line by line, discarding lines that fail to parse.
func ParseDataBlock(body string) []ObisItem {
	lines := strings.FieldsFunc(body, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	items := make([]ObisItem, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if item, ok := ParseObisItem(line); ok {
			items = append(items, item)
		}
	}
	return items
}
