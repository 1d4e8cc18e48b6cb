package session

import (
	"bytes"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/iec21"
)

const pollInterval = 100 * time.Millisecond

// readLine polls port until a CR-LF-terminated line has accrued or deadline
// elapses, returning whatever bytes were collected and whether a full line
// was found. Used for the identification reply, which is CRLF-delimited
// rather than ETX/BCC-framed.
func readLine(port linePort, deadline time.Duration) ([]byte, bool) {
	var buf []byte
	start := time.Now()
	chunk := make([]byte, 256)

	for time.Since(start) < deadline {
		remaining := deadline - time.Since(start)
		if remaining <= 0 {
			break
		}
		waitFor := pollInterval
		if remaining < waitFor {
			waitFor = remaining
		}
		n, err := port.Read(chunk, waitFor)
		if err != nil {
			return buf, false
		}
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if idx := bytes.Index(buf, []byte{iec21.CR, iec21.LF}); idx >= 0 {
				return buf[:idx+2], true
			}
		}
	}
	return buf, false
}

type linePort interface {
	Read(buf []byte, deadline time.Duration) (int, error)
}

// ReadOpportunistic reads whatever bytes arrive within deadline, stopping
// early once the ETX+BCC pair closes an SOH-prefixed frame (a P0 challenge)
// or the buffer stops growing for one full poll interval. It never errors
// on silence — a meter that doesn't challenge simply yields an empty slice.
func ReadOpportunistic(port linePort, deadline time.Duration) []byte {
	var buf []byte
	start := time.Now()
	chunk := make([]byte, 256)

	for time.Since(start) < deadline {
		remaining := deadline - time.Since(start)
		waitFor := pollInterval
		if remaining < waitFor {
			waitFor = remaining
		}
		n, err := port.Read(chunk, waitFor)
		if err != nil {
			return buf
		}
		if n == 0 {
			if len(buf) > 0 {
				return buf // had data, now silent: frame is done
			}
			continue
		}
		buf = append(buf, chunk[:n]...)
		if len(buf) >= 3 && buf[0] == iec21.SOH && bytes.IndexByte(buf, iec21.ETX) >= 0 {
			// ETX seen with at least the BCC byte following it.
			if idx := bytes.IndexByte(buf, iec21.ETX); idx+1 < len(buf) {
				return buf
			}
		}
	}
	return buf
}
