package iec21

import (
	"fmt"
	"strings"
)

// BuildRequest builds the handshake request: "/?" [addr] "!" CR LF.
func BuildRequest(addr string) []byte {
	var b strings.Builder
	b.WriteString("/?")
	b.WriteString(addr)
	b.WriteByte('!')
	b.WriteByte(CR)
	b.WriteByte(LF)
	return []byte(b.String())
}

// BuildAck builds the mode-selection acknowledgment: ACK V Z Y CR LF, where
// both V positions carry modeChar and Z carries baudChar.
func BuildAck(modeChar, baudChar byte) []byte {
	return []byte{ACK, modeChar, baudChar, modeChar, CR, LF}
}

// commandFrame assembles SOH id1 id2 STX body ETX BCC, computing the BCC
// over STX..ETX inclusive as §4.A requires.
func commandFrame(id1, id2 byte, body []byte) []byte {
	msg := make([]byte, 0, 4+len(body)+2)
	msg = append(msg, SOH, id1, id2, STX)
	msg = append(msg, body...)
	msg = append(msg, ETX)
	bcc := BCC(msg[3:]) // STX..ETX inclusive
	return append(msg, bcc)
}

// BuildPasswordPlain builds a P1 plaintext password frame.
func BuildPasswordPlain(password string) []byte {
	body := []byte("(" + password + ")")
	return commandFrame('P', '1', body)
}

// BuildPasswordEncrypted builds a P2 frame carrying the upper-case hex
// encoding of the XOR-transformed password response.
func BuildPasswordEncrypted(response []byte) []byte {
	body := []byte(fmt.Sprintf("(%X)", response))
	return commandFrame('P', '2', body)
}

// BuildRead builds an R2 OBIS read command: SOH R2 STX obis() ETX BCC.
func BuildRead(obis string) []byte {
	body := []byte(obis + "()")
	return commandFrame('R', '2', body)
}

// BuildWrite builds a W2 OBIS write command: SOH W2 STX obis(value) ETX BCC.
func BuildWrite(obis, value string) []byte {
	body := []byte(obis + "(" + value + ")")
	return commandFrame('W', '2', body)
}

// BuildLoadProfile builds an R2 P.nn load-profile request. rng is the
// already-formatted range literal ("yy-mm-dd,HH:MM;yy-mm-dd,HH:MM"); an
// empty rng requests the meter's entire buffer via the "(;)" convention.
func BuildLoadProfile(n int, rng string) []byte {
	var body strings.Builder
	fmt.Fprintf(&body, "P.%02d", n)
	if rng == "" {
		body.WriteString("(;)")
	} else {
		body.WriteByte('(')
		body.WriteString(rng)
		body.WriteByte(')')
	}
	return commandFrame('R', '2', []byte(body.String()))
}

// BuildBreak builds the session-teardown frame: SOH B0 ETX BCC. Unlike the
// other command frames, BREAK carries no STX/body — the BCC covers only the
// trailing ETX byte.
func BuildBreak() []byte {
	msg := []byte{SOH, 'B', '0', ETX}
	bcc := BCC(msg[3:])
	return append(msg, bcc)
}
