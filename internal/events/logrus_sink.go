package events

import (
	"encoding/hex"

	log "github.com/sirupsen/logrus"
)

// LogrusSink forwards driver events to logrus, matching the teacher's
// `log "github.com/sirupsen/logrus"` alias and per-level Infof/Warnf/Errorf
// idiom throughout main.go and sol/manager.go. tx_bytes/rx_bytes are logged
// at Debug, mirroring `log.Debugf("[go-sol] "+format, ...)`: tx with a hex
// dump of the bytes, rx with the byte count only.
type LogrusSink struct{}

func (LogrusSink) TxBytes(code string, p []byte) {
	log.Debugf("[%s] tx %d bytes: %s", code, len(p), hex.EncodeToString(p))
}

func (LogrusSink) RxBytes(code string, n int) {
	log.Debugf("[%s] rx %d bytes", code, n)
}

func (LogrusSink) Info(code, msg string) {
	log.Infof("[%s] %s", code, msg)
}

func (LogrusSink) Warn(code, msg string) {
	log.Warnf("[%s] %s", code, msg)
}

func (LogrusSink) Error(code, msg string) {
	log.Errorf("[%s] %s", code, msg)
}

func (LogrusSink) Success(code, msg string) {
	log.Infof("[%s] ok: %s", code, msg)
}

func (LogrusSink) Progress(step, total int, msg string) {
	log.Debugf("[progress] %d/%d %s", step, total, msg)
}
