package iec21

import "strings"

// ParseIdentification parses a handshake reply of the form
// "/XXXZ<gen>EDAS(MODEL)\r\n". It returns ok=false if any required marker
// is missing; per §3's invariant, a successful parse always yields
// non-empty fields and a baud char that maps to a supported rate.
func ParseIdentification(line string) (Identity, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "/") {
		return Identity{}, false
	}
	content := line[1:]
	if len(content) < 5 {
		return Identity{}, false
	}

	manufacturer := content[:3]
	baudChar := content[3]
	maxBaud, ok := BaudForChar(baudChar)
	if !ok {
		return Identity{}, false
	}

	genStart := strings.IndexByte(content, '<')
	genEnd := strings.IndexByte(content, '>')
	if genStart < 0 || genEnd < 0 || genEnd < genStart {
		return Identity{}, false
	}
	generation := content[genStart+1 : genEnd]

	rest := content[genEnd+1:]
	modelStart := strings.IndexByte(rest, '(')
	if modelStart < 0 {
		return Identity{}, false
	}
	edasID := rest[:modelStart]

	modelEnd := strings.IndexByte(rest, ')')
	if modelEnd < 0 || modelEnd < modelStart {
		return Identity{}, false
	}
	model := rest[modelStart+1 : modelEnd]

	if manufacturer == "" || generation == "" || edasID == "" || model == "" {
		return Identity{}, false
	}

	return Identity{
		Manufacturer: manufacturer,
		BaudChar:     baudChar,
		Generation:   generation,
		EdasID:       edasID,
		Model:        model,
		MaxBaudRate:  maxBaud,
	}, true
}
