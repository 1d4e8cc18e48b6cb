package events

// Multi fans calls out to several sinks in order, mirroring io.MultiWriter.
// Used to wire LogrusSink (logging), Hub (SSE broadcast) and FileSink (frame
// archive) as a Session's single sink.
type Multi []Sink

func (m Multi) TxBytes(code string, p []byte) {
	for _, s := range m {
		s.TxBytes(code, p)
	}
}

func (m Multi) RxBytes(code string, n int) {
	for _, s := range m {
		s.RxBytes(code, n)
	}
}

func (m Multi) Info(code, msg string) {
	for _, s := range m {
		s.Info(code, msg)
	}
}

func (m Multi) Warn(code, msg string) {
	for _, s := range m {
		s.Warn(code, msg)
	}
}

func (m Multi) Error(code, msg string) {
	for _, s := range m {
		s.Error(code, msg)
	}
}

func (m Multi) Success(code, msg string) {
	for _, s := range m {
		s.Success(code, msg)
	}
}

func (m Multi) Progress(step, total int, msg string) {
	for _, s := range m {
		s.Progress(step, total, msg)
	}
}
