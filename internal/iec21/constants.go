// Package iec21 implements the wire codec and variable-length frame reader
// for IEC 62056-21 Mode C: control bytes, BCC, frame builders/parsers,
// identification parsing, OBIS item extraction, and the P0 seed transform.
package iec21

// Control bytes used as frame delimiters and confirmations.
const (
	SOH byte = 0x01
	STX byte = 0x02
	ETX byte = 0x03
	EOT byte = 0x04
	ACK byte = 0x06
	NAK byte = 0x15
	CR  byte = 0x0D
	LF  byte = 0x0A
)

// baudByChar and charByBaud implement the invertible baud-character map
// of §4.A: '0'..'6' map to 300..19200 bps.
var baudByChar = map[byte]int{
	'0': 300,
	'1': 600,
	'2': 1200,
	'3': 2400,
	'4': 4800,
	'5': 9600,
	'6': 19200,
}

var charByBaud = func() map[int]byte {
	m := make(map[int]byte, len(baudByChar))
	for c, b := range baudByChar {
		m[b] = c
	}
	return m
}()

// BaudForChar returns the bit rate for a baud character, or false if c is
// not one of '0'..'6'.
func BaudForChar(c byte) (int, bool) {
	b, ok := baudByChar[c]
	return b, ok
}

// CharForBaud returns the baud character for a supported bit rate, or false
// if rate isn't one of the seven supported rates.
func CharForBaud(rate int) (byte, bool) {
	c, ok := charByBaud[rate]
	return c, ok
}
