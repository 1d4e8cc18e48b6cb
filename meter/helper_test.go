package meter

import (
	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

const testIdentLine = "/MKS5<2>ADM(M550.2251)\r\n"

// openerFor builds a session.Opener that always returns port regardless of
// the requested name/baud, for tests that only exercise a single probe.
func openerFor(port serialport.Port) func(name string, baud int) (serialport.Port, error) {
	return func(name string, baud int) (serialport.Port, error) {
		return port, nil
	}
}

// buildDataFrame wraps body (an OBIS data block) in STX/ETX/BCC framing.
func buildDataFrame(body string) []byte {
	frame := append([]byte{iec21.STX}, []byte(body)...)
	frame = append(frame, iec21.ETX)
	frame = append(frame, iec21.BCC(frame))
	return frame
}

// fakeHandshakePort returns a Fake pre-loaded with an identification line
// (for the probe) followed by a data frame (for whatever read comes next).
func fakeHandshakePort(dataFrame []byte) *serialport.Fake {
	f := serialport.NewFake().Feed([]byte(testIdentLine))
	if len(dataFrame) > 0 {
		f.Feed(dataFrame)
	}
	return f
}

func newTestSession(port serialport.Port) *Session {
	s := New(events.Null{})
	s.opener = openerFor(port)
	return s
}
